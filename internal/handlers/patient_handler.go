package handlers

import (
	"errors"

	"github.com/calmind-app/calmind-backend/internal/dto"
	"github.com/calmind-app/calmind-backend/internal/services"
	"github.com/calmind-app/calmind-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PatientHandler struct {
	patientService *services.PatientService
}

func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// List handles GET /patients.
func (h *PatientHandler) List(c *fiber.Ctx) error {
	patients, err := h.patientService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch patients"))
	}
	return c.JSON(dto.Success("", patients))
}

// Get handles GET /patients/:id.
func (h *PatientHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid patient ID"))
	}

	patient, err := h.patientService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Patient not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch patient"))
	}
	return c.JSON(dto.Success("", patient))
}

// Appointments handles GET /patients/:id/appointments with the flattened
// psychologist contact view.
func (h *PatientHandler) Appointments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid patient ID"))
	}

	appointments, err := h.patientService.Appointments(id)
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Patient not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch appointments"))
	}

	views := make([]dto.PatientAppointmentResponse, len(appointments))
	for i, a := range appointments {
		views[i] = dto.PatientAppointmentResponse{
			ID:        a.ID,
			Date:      a.Date,
			StartTime: dto.ClockHHMM(a.StartTime),
			EndTime:   dto.ClockHHMM(a.EndTime),
			Status:    a.Status,
			Psychologist: dto.PsychologistContact{
				ID:          a.Psychologist.ID,
				Name:        a.Psychologist.User.Firstname + " " + a.Psychologist.User.Lastname,
				Email:       a.Psychologist.User.Email,
				PhoneNumber: a.Psychologist.User.PhoneNumber,
			},
		}
	}
	return c.JSON(dto.Success("", views))
}

// AIAnalysis handles GET /patients/:id/ai-analysis.
func (h *PatientHandler) AIAnalysis(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid patient ID"))
	}

	analysis, err := h.patientService.AIAnalysis(id)
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Patient not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch ai analysis"))
	}
	return c.JSON(dto.Success("", analysis))
}

// Update handles PUT /patients/:id.
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid patient ID"))
	}

	var req dto.UpdatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if errs := validation.Struct(&req); errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationFailed(errs))
	}

	patient, err := h.patientService.Update(id, services.UpdatePatientFields{
		Firstname:   req.Firstname,
		Lastname:    req.Lastname,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
	})
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Patient not found"))
		}
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationFailed(
				map[string][]string{"email": {"The email has already been taken."}}))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to update patient"))
	}

	return c.JSON(dto.Success("Patient updated successfully", patient))
}

// Delete handles DELETE /patients/:id. The linked user is removed and the
// patient row plus its appointments cascade.
func (h *PatientHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid patient ID"))
	}

	if err := h.patientService.Delete(id); err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Patient not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to delete patient"))
	}

	return c.JSON(dto.Success("Patient deleted successfully", nil))
}

// Psychologists handles GET /psychologists, the public verified listing.
func (h *PatientHandler) Psychologists(c *fiber.Ctx) error {
	psychologists, err := h.patientService.VerifiedPsychologists()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch psychologists"))
	}

	listings := make([]dto.PsychologistListing, len(psychologists))
	for i, p := range psychologists {
		listings[i] = dto.PsychologistListing{
			ID:                               p.ID,
			ProfilePicture:                   p.User.ProfilePicture,
			Firstname:                        p.User.Firstname,
			Lastname:                         p.User.Lastname,
			ProfessionalIdentificationNumber: p.ProfessionalIdentificationNumber,
			Degree:                           p.Degree,
			Specialization:                   p.Specialization,
			WorkExperience:                   p.WorkExperience,
			IsVerified:                       p.IsVerified,
		}
	}
	return c.JSON(dto.Success("List of Psychologists", listings))
}
