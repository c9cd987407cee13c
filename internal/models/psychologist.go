package models

import (
	"time"

	"github.com/google/uuid"
)

type Psychologist struct {
	ID                               uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID                           uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User                             User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	ProfessionalIdentificationNumber string        `gorm:"size:100" json:"professional_identification_number"`
	Degree                           string        `gorm:"size:100" json:"degree"`
	Specialization                   string        `gorm:"size:255" json:"specialization"`
	WorkExperience                   string        `gorm:"size:255" json:"work_experience"`
	IsVerified                       bool          `gorm:"not null;default:false" json:"is_verified"`
	Appointments                     []Appointment `gorm:"foreignKey:PsychologistID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt                        time.Time     `json:"created_at"`
	UpdatedAt                        time.Time     `json:"updated_at"`
}
