package models

import (
	"time"

	"github.com/google/uuid"
)

// AiAnalyzer holds one AI-derived screening result for a patient. Rows are
// produced by the analysis pipeline outside this service; this backend only
// reads them. The latest record is the one with the greatest created_at.
type AiAnalyzer struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID  uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Complaint  string    `gorm:"type:text" json:"complaint"`
	Stress     float64   `json:"stress"`
	Anxiety    float64   `json:"anxiety"`
	Depression float64   `json:"depression"`
	CreatedAt  time.Time `json:"created_at"`
}
