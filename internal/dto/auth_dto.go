package dto

import "github.com/google/uuid"

type RegisterPatientRequest struct {
	Firstname   string `json:"firstname" validate:"required"`
	Lastname    string `json:"lastname" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
}

type RegisterPsychologistRequest struct {
	Firstname                        string `json:"firstname" validate:"required"`
	Lastname                         string `json:"lastname" validate:"required"`
	Email                            string `json:"email" validate:"required,email"`
	Password                         string `json:"password" validate:"required,min=8"`
	PhoneNumber                      string `json:"phone_number"`
	Gender                           string `json:"gender"`
	ProfessionalIdentificationNumber string `json:"professional_identification_number" validate:"required"`
	Degree                           string `json:"degree"`
	Specialization                   string `json:"specialization"`
	WorkExperience                   string `json:"work_experience"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Firstname      string    `json:"firstname"`
	Lastname       string    `json:"lastname"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number"`
	Gender         string    `json:"gender"`
	ProfilePicture string    `json:"profile_picture"`
	Role           string    `json:"role"`
}

// ProfileResponse is the authenticated user plus its role record, if any.
type ProfileResponse struct {
	User         UserResponse `json:"user"`
	Patient      interface{}  `json:"patient,omitempty"`
	Psychologist interface{}  `json:"psychologist,omitempty"`
}
