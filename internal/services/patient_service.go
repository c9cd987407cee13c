package services

import (
	"errors"
	"fmt"

	"github.com/calmind-app/calmind-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type PatientService struct {
	db *gorm.DB
}

func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{db: db}
}

func (s *PatientService) List() ([]models.Patient, error) {
	var patients []models.Patient
	if err := s.db.Preload("User").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *PatientService) Get(id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.Preload("User").First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	return &patient, nil
}

// Appointments returns all appointments of the patient with the
// psychologist and its user preloaded for the flattened view.
func (s *PatientService) Appointments(patientID uuid.UUID) ([]models.Appointment, error) {
	if err := s.exists(patientID); err != nil {
		return nil, err
	}

	var appointments []models.Appointment
	err := s.db.Preload("Psychologist.User").
		Where("patient_id = ?", patientID).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	return appointments, nil
}

// AIAnalysis returns every analyzer record of the patient. This service
// only reads them; the analysis pipeline writes them elsewhere.
func (s *PatientService) AIAnalysis(patientID uuid.UUID) ([]models.AiAnalyzer, error) {
	if err := s.exists(patientID); err != nil {
		return nil, err
	}

	var analysis []models.AiAnalyzer
	if err := s.db.Where("patient_id = ?", patientID).Find(&analysis).Error; err != nil {
		return nil, fmt.Errorf("failed to load ai analysis: %w", err)
	}
	return analysis, nil
}

// Update partially updates the patient's linked user row. Email uniqueness
// excludes the patient's own user; passwords are hashed before storage.
func (s *PatientService) Update(id uuid.UUID, fields UpdatePatientFields) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	if fields.Email != nil {
		var count int64
		err := s.db.Model(&models.User{}).
			Where("email = ? AND id <> ?", *fields.Email, patient.UserID).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", patient.UserID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if fields.Firstname != nil {
		user.Firstname = *fields.Firstname
	}
	if fields.Lastname != nil {
		user.Lastname = *fields.Lastname
	}
	if fields.Email != nil {
		user.Email = *fields.Email
	}
	if fields.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*fields.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}
	if fields.PhoneNumber != nil {
		user.PhoneNumber = *fields.PhoneNumber
	}
	if fields.Gender != nil {
		user.Gender = *fields.Gender
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	patient.User = user
	return &patient, nil
}

// Delete removes the patient's linked user; the patient row, its
// appointments and analyzer records follow via cascade.
func (s *PatientService) Delete(id uuid.UUID) error {
	var patient models.Patient
	if err := s.db.First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPatientNotFound
		}
		return fmt.Errorf("failed to load patient: %w", err)
	}

	result := s.db.Delete(&models.User{}, "id = ?", patient.UserID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	return nil
}

// VerifiedPsychologists lists psychologists visible to patients.
func (s *PatientService) VerifiedPsychologists() ([]models.Psychologist, error) {
	var psychologists []models.Psychologist
	err := s.db.Preload("User").Where("is_verified = ?", true).Find(&psychologists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list psychologists: %w", err)
	}
	return psychologists, nil
}

func (s *PatientService) exists(id uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Patient{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check patient: %w", err)
	}
	if count == 0 {
		return ErrPatientNotFound
	}
	return nil
}

// UpdatePatientFields carries the optional fields of a partial patient
// update; nil means "leave unchanged".
type UpdatePatientFields struct {
	Firstname   *string
	Lastname    *string
	Email       *string
	Password    *string
	PhoneNumber *string
	Gender      *string
}
