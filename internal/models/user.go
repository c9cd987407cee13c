package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RolePatient      = "patient"
	RolePsychologist = "psychologist"
	RoleAdmin        = "admin"
)

// User is the shared identity record. Role-specific data lives in the
// Patient or Psychologist row pointing back at it. Users are hard-deleted
// so the ON DELETE CASCADE on the role rows fires.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Firstname      string    `gorm:"size:100;not null" json:"firstname"`
	Lastname       string    `gorm:"size:100;not null" json:"lastname"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	PhoneNumber    string    `gorm:"size:30" json:"phone_number"`
	Gender         string    `gorm:"size:20" json:"gender"`
	ProfilePicture string    `gorm:"type:text" json:"profile_picture"`
	Role           string    `gorm:"size:20;not null;default:'patient'" json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
