package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusWaiting   = "waiting"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

// ValidStatus reports whether s is one of the four appointment statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusWaiting, StatusOngoing, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// TerminalStatus reports whether s can never be left again.
func TerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Appointment is a booked session between a patient and a psychologist.
// Date is YYYY-MM-DD and the time fields are HH:MM:SS wall-clock values
// in the clinic timezone.
type Appointment struct {
	ID             uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Date           string       `gorm:"size:10;not null" json:"date"`
	StartTime      string       `gorm:"size:8;not null" json:"start_time"`
	EndTime        string       `gorm:"size:8;not null" json:"end_time"`
	Status         string       `gorm:"size:20;not null;default:'waiting'" json:"status"`
	Note           string       `gorm:"type:text" json:"note"`
	ChannelID      *string      `gorm:"size:255" json:"channel_id"`
	PatientID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"patient_id"`
	PsychologistID uuid.UUID    `gorm:"type:uuid;not null;index" json:"psychologist_id"`
	Patient        Patient      `gorm:"foreignKey:PatientID" json:"-"`
	Psychologist   Psychologist `gorm:"foreignKey:PsychologistID" json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
