package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/calmind-app/calmind-backend/internal/lifecycle"
	"github.com/calmind-app/calmind-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var activeStatuses = []string{models.StatusWaiting, models.StatusOngoing}

// ConsultationSummary aggregates a psychologist's dashboard numbers.
type ConsultationSummary struct {
	Appointments             []models.Appointment
	TotalWeeklyConsultation  int64
	TotalConsultation        int64
	TodayOngoingConsultation int64
	// MonthlyPatientCount maps month name to the distinct patients seen in
	// that calendar month, across the entire appointment history.
	MonthlyPatientCount map[string]int64
}

type PsychologistService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewPsychologistService(db *gorm.DB, loc *time.Location) *PsychologistService {
	return &PsychologistService{db: db, loc: loc, now: time.Now}
}

// WithClock overrides the wall clock, for deterministic tests.
func (s *PsychologistService) WithClock(now func() time.Time) *PsychologistService {
	s.now = now
	return s
}

// Consultations returns the waiting/ongoing appointments of the
// psychologist together with the dashboard aggregates.
func (s *PsychologistService) Consultations(psychologistID uuid.UUID) (*ConsultationSummary, error) {
	summary := &ConsultationSummary{MonthlyPatientCount: make(map[string]int64, 12)}

	err := s.db.Preload("Patient.User").
		Where("psychologist_id = ? AND status IN ?", psychologistID, activeStatuses).
		Find(&summary.Appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load consultations: %w", err)
	}

	now := s.now().In(s.loc)

	err = s.db.Model(&models.Appointment{}).
		Where("psychologist_id = ? AND created_at >= ?", psychologistID, now.AddDate(0, 0, -7)).
		Count(&summary.TotalWeeklyConsultation).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count weekly consultations: %w", err)
	}

	err = s.db.Model(&models.Appointment{}).
		Where("psychologist_id = ?", psychologistID).
		Count(&summary.TotalConsultation).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count consultations: %w", err)
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	err = s.db.Model(&models.Appointment{}).
		Where("psychologist_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			psychologistID, models.StatusOngoing, startOfDay, startOfDay.AddDate(0, 0, 1)).
		Count(&summary.TodayOngoingConsultation).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count today's consultations: %w", err)
	}

	for month := 1; month <= 12; month++ {
		var count int64
		err = s.db.Model(&models.Appointment{}).
			Where("psychologist_id = ? AND EXTRACT(MONTH FROM created_at) = ?", psychologistID, month).
			Distinct("patient_id").
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count monthly patients: %w", err)
		}
		summary.MonthlyPatientCount[time.Month(month).String()] = count
	}

	return summary, nil
}

// ActivePatients returns the psychologist's waiting/ongoing appointments
// after lazily applying the automatic status transitions. Changed statuses
// are persisted row by row; a failed write is logged and the computed
// status still returned, since the next listing recomputes it anyway.
func (s *PsychologistService) ActivePatients(psychologistID uuid.UUID) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Preload("Patient.User").
		Where("psychologist_id = ? AND status IN ?", psychologistID, activeStatuses).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	now := s.now()
	for i := range appointments {
		next, changed := lifecycle.Next(&appointments[i], now, s.loc)
		if !changed {
			continue
		}
		appointments[i].Status = next
		err := s.db.Model(&models.Appointment{}).
			Where("id = ?", appointments[i].ID).
			Update("status", next).Error
		if err != nil {
			slog.Error("failed to persist appointment status",
				"appointment_id", appointments[i].ID, "status", next, "error", err)
		}
	}

	return appointments, nil
}

// Accept forces the appointment to ongoing, regardless of the time window.
func (s *PsychologistService) Accept(id uuid.UUID) (*models.Appointment, error) {
	return s.setStatus(id, models.StatusOngoing, nil)
}

// Complete forces the appointment to completed.
func (s *PsychologistService) Complete(id uuid.UUID) (*models.Appointment, error) {
	return s.setStatus(id, models.StatusCompleted, nil)
}

// Cancel forces the appointment to canceled. A nil note leaves the stored
// note untouched.
func (s *PsychologistService) Cancel(id uuid.UUID, note *string) (*models.Appointment, error) {
	return s.setStatus(id, models.StatusCanceled, note)
}

func (s *PsychologistService) setStatus(id uuid.UUID, status string, note *string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	appointment.Status = status
	if note != nil {
		appointment.Note = *note
	}

	if err := s.db.Save(&appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return &appointment, nil
}

// Detail loads one appointment for the requesting psychologist, including
// the patient's latest analyzer record. Ownership is checked before any
// patient data is loaded.
func (s *PsychologistService) Detail(id, requestingPsychologistID uuid.UUID) (*models.Appointment, *models.AiAnalyzer, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAppointmentNotFound
		}
		return nil, nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	if appointment.PsychologistID != requestingPsychologistID {
		return nil, nil, ErrForbidden
	}

	if err := s.db.Preload("User").First(&appointment.Patient, "id = ?", appointment.PatientID).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load patient: %w", err)
	}

	var latest models.AiAnalyzer
	err := s.db.Where("patient_id = ?", appointment.PatientID).
		Order("created_at DESC").
		First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &appointment, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ai analysis: %w", err)
	}
	return &appointment, &latest, nil
}

// Verify marks a psychologist as verified so it appears in the public
// listing.
func (s *PsychologistService) Verify(id uuid.UUID) (*models.Psychologist, error) {
	var psychologist models.Psychologist
	if err := s.db.First(&psychologist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPsychologistNotFound
		}
		return nil, fmt.Errorf("failed to load psychologist: %w", err)
	}

	psychologist.IsVerified = true
	if err := s.db.Save(&psychologist).Error; err != nil {
		return nil, fmt.Errorf("failed to verify psychologist: %w", err)
	}
	return &psychologist, nil
}
