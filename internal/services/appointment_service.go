package services

import (
	"errors"
	"fmt"

	"github.com/calmind-app/calmind-backend/internal/lifecycle"
	"github.com/calmind-app/calmind-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentService struct {
	db *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

func (s *AppointmentService) List() ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := s.db.Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *AppointmentService) Get(id uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return &appointment, nil
}

// CreateAppointmentFields carries a new booking. Times may arrive as HH:MM
// or HH:MM:SS; they are stored normalized.
type CreateAppointmentFields struct {
	Date           string
	StartTime      string
	EndTime        string
	PatientID      uuid.UUID
	PsychologistID uuid.UUID
	ChannelID      *string
	Note           *string
}

func (s *AppointmentService) Create(fields CreateAppointmentFields) (*models.Appointment, error) {
	var count int64
	if err := s.db.Model(&models.Patient{}).Where("id = ?", fields.PatientID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}
	if count == 0 {
		return nil, ErrPatientNotFound
	}

	if err := s.db.Model(&models.Psychologist{}).Where("id = ?", fields.PsychologistID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check psychologist: %w", err)
	}
	if count == 0 {
		return nil, ErrPsychologistNotFound
	}

	start, err := lifecycle.NormalizeClock(fields.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := lifecycle.NormalizeClock(fields.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}

	appointment := models.Appointment{
		ID:             uuid.New(),
		Date:           fields.Date,
		StartTime:      start,
		EndTime:        end,
		Status:         models.StatusWaiting,
		PatientID:      fields.PatientID,
		PsychologistID: fields.PsychologistID,
		ChannelID:      fields.ChannelID,
	}
	if fields.Note != nil {
		appointment.Note = *fields.Note
	}

	if err := s.db.Create(&appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return &appointment, nil
}

// UpdateAppointmentFields carries a partial appointment update; nil means
// "leave unchanged".
type UpdateAppointmentFields struct {
	Date      *string
	StartTime *string
	EndTime   *string
	Status    *string
	Note      *string
	ChannelID *string
}

// Update applies a partial update. Terminal statuses are never reverted.
func (s *AppointmentService) Update(id uuid.UUID, fields UpdateAppointmentFields) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	if fields.Status != nil && *fields.Status != appointment.Status {
		if models.TerminalStatus(appointment.Status) {
			return nil, ErrTerminalStatus
		}
		appointment.Status = *fields.Status
	}

	if fields.Date != nil {
		appointment.Date = *fields.Date
	}
	if fields.StartTime != nil {
		start, err := lifecycle.NormalizeClock(*fields.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid start time: %w", err)
		}
		appointment.StartTime = start
	}
	if fields.EndTime != nil {
		end, err := lifecycle.NormalizeClock(*fields.EndTime)
		if err != nil {
			return nil, fmt.Errorf("invalid end time: %w", err)
		}
		appointment.EndTime = end
	}
	if fields.Note != nil {
		appointment.Note = *fields.Note
	}
	if fields.ChannelID != nil {
		appointment.ChannelID = fields.ChannelID
	}

	if err := s.db.Save(&appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return &appointment, nil
}

func (s *AppointmentService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete appointment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (s *AppointmentService) ByPsychologist(psychologistID uuid.UUID) ([]models.Appointment, error) {
	var count int64
	if err := s.db.Model(&models.Psychologist{}).Where("id = ?", psychologistID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check psychologist: %w", err)
	}
	if count == 0 {
		return nil, ErrPsychologistNotFound
	}

	var appointments []models.Appointment
	if err := s.db.Where("psychologist_id = ?", psychologistID).Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *AppointmentService) ByPatient(patientID uuid.UUID) ([]models.Appointment, error) {
	var count int64
	if err := s.db.Model(&models.Patient{}).Where("id = ?", patientID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}
	if count == 0 {
		return nil, ErrPatientNotFound
	}

	var appointments []models.Appointment
	if err := s.db.Where("patient_id = ?", patientID).Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
