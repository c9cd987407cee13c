package models

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID           uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User         User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Appointments []Appointment `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	AiAnalyzers  []AiAnalyzer  `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
