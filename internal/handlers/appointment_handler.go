package handlers

import (
	"errors"

	"github.com/calmind-app/calmind-backend/internal/dto"
	"github.com/calmind-app/calmind-backend/internal/services"
	"github.com/calmind-app/calmind-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	appointments, err := h.appointmentService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch appointments"))
	}
	return c.JSON(dto.Success("", appointments))
}

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid appointment ID"))
	}

	appointment, err := h.appointmentService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Appointment not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch appointment"))
	}
	return c.JSON(dto.Success("", appointment))
}

func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if errs := validation.Struct(&req); errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationFailed(errs))
	}

	appointment, err := h.appointmentService.Create(services.CreateAppointmentFields{
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		PatientID:      req.PatientID,
		PsychologistID: req.PsychologistID,
		ChannelID:      req.ChannelID,
		Note:           req.Note,
	})
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Patient not found"))
		}
		if errors.Is(err, services.ErrPsychologistNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Psychologist not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to create appointment"))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.Success("Appointment created successfully", appointment))
}

func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid appointment ID"))
	}

	var req dto.UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if errs := validation.Struct(&req); errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationFailed(errs))
	}

	appointment, err := h.appointmentService.Update(id, services.UpdateAppointmentFields{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    req.Status,
		Note:      req.Note,
		ChannelID: req.ChannelID,
	})
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Appointment not found"))
		}
		if errors.Is(err, services.ErrTerminalStatus) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationFailed(
				map[string][]string{"status": {"A completed or canceled appointment cannot change status."}}))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to update appointment"))
	}

	return c.JSON(dto.Success("Appointment updated successfully", appointment))
}

func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid appointment ID"))
	}

	if err := h.appointmentService.Delete(id); err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Appointment not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to delete appointment"))
	}

	return c.JSON(dto.Success("Appointment deleted successfully", nil))
}

// ByPsychologist handles GET /appointments/psychologist/:id.
func (h *AppointmentHandler) ByPsychologist(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid psychologist ID"))
	}

	appointments, err := h.appointmentService.ByPsychologist(id)
	if err != nil {
		if errors.Is(err, services.ErrPsychologistNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Psychologist not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch appointments"))
	}
	return c.JSON(dto.Success("", appointments))
}

// ByPatient handles GET /appointments/patient/:id.
func (h *AppointmentHandler) ByPatient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid patient ID"))
	}

	appointments, err := h.appointmentService.ByPatient(id)
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Patient not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch appointments"))
	}
	return c.JSON(dto.Success("", appointments))
}
