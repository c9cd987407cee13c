package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	Date           string    `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string    `json:"start_time" validate:"required,clock"`
	EndTime        string    `json:"end_time" validate:"required,clock"`
	PatientID      uuid.UUID `json:"patient_id" validate:"required"`
	PsychologistID uuid.UUID `json:"psychologist_id" validate:"required"`
	ChannelID      *string   `json:"channel_id"`
	Note           *string   `json:"note"`
}

type UpdateAppointmentRequest struct {
	Date      *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"start_time" validate:"omitempty,clock"`
	EndTime   *string `json:"end_time" validate:"omitempty,clock"`
	Status    *string `json:"status" validate:"omitempty,oneof=waiting ongoing completed canceled"`
	Note      *string `json:"note"`
	ChannelID *string `json:"channel_id"`
}

type CancelAppointmentRequest struct {
	Note *string `json:"note"`
}

// ConsultationRow is one entry of the psychologist's consultation list.
type ConsultationRow struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	ID            uuid.UUID `json:"id"`
	Firstname     string    `json:"firstname"`
	Lastname      string    `json:"lastname"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	DetailURL     string    `json:"detail_url"`
}

type ConsultationsResponse struct {
	Consultations            []ConsultationRow `json:"consultations"`
	TotalWeeklyConsultation  int64             `json:"total_weekly_consultation"`
	TotalConsultation        int64             `json:"total_consultation"`
	TodayOngoingConsultation int64             `json:"today_ongoing_consultation"`
	MonthlyPatientCount      map[string]int64  `json:"monthly_patient_count"`
}

// DashboardPatientRow is one entry of the psychologist's active patient
// list, annotated with the actions the current status permits.
type DashboardPatientRow struct {
	ID        uuid.UUID `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Gender    string    `json:"gender"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	DetailURL string    `json:"detail_url"`
	CancelURL string    `json:"cancel_url"`
	AcceptURL string    `json:"accept_url,omitempty"`
	DoneURL   string    `json:"done_url,omitempty"`
}

type AiAnalyzerResponse struct {
	Complaint  string    `json:"complaint"`
	Stress     float64   `json:"stress"`
	Anxiety    float64   `json:"anxiety"`
	Depression float64   `json:"depression"`
	CreatedAt  time.Time `json:"created_at"`
}

type AppointmentDetailResponse struct {
	ID            uuid.UUID           `json:"id"`
	PatientID     uuid.UUID           `json:"patient_id"`
	Firstname     string              `json:"firstname"`
	Lastname      string              `json:"lastname"`
	Gender        string              `json:"gender"`
	Phone         string              `json:"phone"`
	Email         string              `json:"email"`
	Date          string              `json:"date"`
	StartTime     string              `json:"start_time"`
	EndTime       string              `json:"end_time"`
	ChannelID     *string             `json:"channel_id"`
	Status        string              `json:"status"`
	DoneURL       string              `json:"done_url"`
	CancelURL     string              `json:"cancel_url"`
	AiAnalysisURL string              `json:"ai_analysis_url"`
	AiAnalyzer    *AiAnalyzerResponse `json:"ai_analyzer"`
}

// ClockHHMM trims an HH:MM:SS wall-clock string to HH:MM for responses.
func ClockHHMM(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}
