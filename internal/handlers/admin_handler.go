package handlers

import (
	"errors"

	"github.com/calmind-app/calmind-backend/internal/dto"
	"github.com/calmind-app/calmind-backend/internal/models"
	"github.com/calmind-app/calmind-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db                  *gorm.DB
	psychologistService *services.PsychologistService
}

func NewAdminHandler(db *gorm.DB, psychologistService *services.PsychologistService) *AdminHandler {
	return &AdminHandler{db: db, psychologistService: psychologistService}
}

// Home handles GET /admin/home with platform-wide counts.
func (h *AdminHandler) Home(c *fiber.Ctx) error {
	var patients, psychologists, unverified, appointments int64

	if err := h.db.Model(&models.Patient{}).Count(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to load overview"))
	}
	if err := h.db.Model(&models.Psychologist{}).Count(&psychologists).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to load overview"))
	}
	if err := h.db.Model(&models.Psychologist{}).Where("is_verified = ?", false).Count(&unverified).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to load overview"))
	}
	if err := h.db.Model(&models.Appointment{}).Count(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to load overview"))
	}

	return c.JSON(dto.Success("Overview retrieved successfully", fiber.Map{
		"total_patients":           patients,
		"total_psychologists":      psychologists,
		"unverified_psychologists": unverified,
		"total_appointments":       appointments,
	}))
}

// VerifyPsychologist handles PUT /admin/psychologists/:id/verify.
func (h *AdminHandler) VerifyPsychologist(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid psychologist ID"))
	}

	psychologist, err := h.psychologistService.Verify(id)
	if err != nil {
		if errors.Is(err, services.ErrPsychologistNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Psychologist not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to verify psychologist"))
	}

	return c.JSON(dto.Success("Psychologist verified successfully", psychologist))
}
