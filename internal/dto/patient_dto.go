package dto

import "github.com/google/uuid"

// UpdatePatientRequest is a partial update of the patient's linked user row.
type UpdatePatientRequest struct {
	Firstname   *string `json:"firstname"`
	Lastname    *string `json:"lastname"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
	PhoneNumber *string `json:"phone_number"`
	Gender      *string `json:"gender"`
}

// PsychologistContact is the flattened psychologist block inside a patient's
// appointment view.
type PsychologistContact struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
}

type PatientAppointmentResponse struct {
	ID           uuid.UUID           `json:"id"`
	Date         string              `json:"date"`
	StartTime    string              `json:"start_time"`
	EndTime      string              `json:"end_time"`
	Status       string              `json:"status"`
	Psychologist PsychologistContact `json:"psychologist"`
}

// PsychologistListing is one row of the public verified-psychologist list.
type PsychologistListing struct {
	ID                               uuid.UUID `json:"id"`
	ProfilePicture                   string    `json:"profile_picture"`
	Firstname                        string    `json:"firstname"`
	Lastname                         string    `json:"lastname"`
	ProfessionalIdentificationNumber string    `json:"professional_identification_number"`
	Degree                           string    `json:"degree"`
	Specialization                   string    `json:"specialization"`
	WorkExperience                   string    `json:"work_experience"`
	IsVerified                       bool      `json:"is_verified"`
}
