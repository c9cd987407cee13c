package handlers

import (
	"errors"

	"github.com/calmind-app/calmind-backend/internal/actor"
	"github.com/calmind-app/calmind-backend/internal/dto"
	"github.com/calmind-app/calmind-backend/internal/models"
	"github.com/calmind-app/calmind-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dashboardBasePath = "/api/psychologist/appointments/"

type PsychologistHandler struct {
	psychologistService *services.PsychologistService
}

func NewPsychologistHandler(psychologistService *services.PsychologistService) *PsychologistHandler {
	return &PsychologistHandler{psychologistService: psychologistService}
}

// Consultations handles GET /psychologist/consultations: the active
// consultation list plus the dashboard aggregates.
func (h *PsychologistHandler) Consultations(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil || act.ProfileID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	summary, err := h.psychologistService.Consultations(act.ProfileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch consultations"))
	}

	rows := make([]dto.ConsultationRow, len(summary.Appointments))
	for i, a := range summary.Appointments {
		rows[i] = dto.ConsultationRow{
			AppointmentID: a.ID,
			ID:            a.Patient.User.ID,
			Firstname:     a.Patient.User.Firstname,
			Lastname:      a.Patient.User.Lastname,
			Date:          a.Date,
			StartTime:     dto.ClockHHMM(a.StartTime),
			EndTime:       dto.ClockHHMM(a.EndTime),
			Status:        a.Status,
			DetailURL:     dashboardBasePath + a.ID.String(),
		}
	}

	return c.JSON(dto.Success("Consultations retrieved successfully", dto.ConsultationsResponse{
		Consultations:            rows,
		TotalWeeklyConsultation:  summary.TotalWeeklyConsultation,
		TotalConsultation:        summary.TotalConsultation,
		TodayOngoingConsultation: summary.TodayOngoingConsultation,
		MonthlyPatientCount:      summary.MonthlyPatientCount,
	}))
}

// Patients handles GET /psychologist/patients. Statuses are refreshed
// lazily and each row carries the action URLs its status permits.
func (h *PsychologistHandler) Patients(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil || act.ProfileID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	appointments, err := h.psychologistService.ActivePatients(act.ProfileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch patients"))
	}

	rows := make([]dto.DashboardPatientRow, len(appointments))
	for i, a := range appointments {
		row := dto.DashboardPatientRow{
			ID:        a.ID,
			Firstname: a.Patient.User.Firstname,
			Lastname:  a.Patient.User.Lastname,
			Gender:    a.Patient.User.Gender,
			Phone:     a.Patient.User.PhoneNumber,
			Date:      a.Date,
			StartTime: dto.ClockHHMM(a.StartTime),
			EndTime:   dto.ClockHHMM(a.EndTime),
			Status:    a.Status,
			DetailURL: dashboardBasePath + a.ID.String(),
			CancelURL: dashboardBasePath + a.ID.String() + "/cancel",
		}
		switch a.Status {
		case models.StatusWaiting:
			row.AcceptURL = dashboardBasePath + a.ID.String() + "/accept"
		case models.StatusOngoing:
			row.DoneURL = dashboardBasePath + a.ID.String() + "/done"
		}
		rows[i] = row
	}

	return c.JSON(dto.Success("Patients retrieved successfully", fiber.Map{"patients": rows}))
}

// Accept handles PUT /psychologist/appointments/:id/accept.
func (h *PsychologistHandler) Accept(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid appointment ID"))
	}

	if _, err := h.psychologistService.Accept(id); err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Appointment not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to accept appointment"))
	}

	return c.JSON(dto.Success("Appointment accepted successfully", nil))
}

// Done handles PUT /psychologist/appointments/:id/done.
func (h *PsychologistHandler) Done(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid appointment ID"))
	}

	if _, err := h.psychologistService.Complete(id); err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Appointment not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to complete appointment"))
	}

	return c.JSON(dto.Success("Appointment completed successfully", nil))
}

// Cancel handles PUT /psychologist/appointments/:id/cancel with an
// optional note.
func (h *PsychologistHandler) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid appointment ID"))
	}

	var req dto.CancelAppointmentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
		}
	}

	appointment, err := h.psychologistService.Cancel(id, req.Note)
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Appointment not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to cancel appointment"))
	}

	return c.JSON(dto.Success("Appointment cancelled successfully", fiber.Map{"note": appointment.Note}))
}

// Detail handles GET /psychologist/appointments/:id. Access is limited to
// the owning psychologist; the patient's latest analyzer record rides along.
func (h *PsychologistHandler) Detail(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil || act.ProfileID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid appointment ID"))
	}

	appointment, latest, err := h.psychologistService.Detail(id, act.ProfileID)
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Appointment not found"))
		}
		if errors.Is(err, services.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Error("You do not have access to this appointment"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch appointment"))
	}

	detail := dto.AppointmentDetailResponse{
		ID:            appointment.ID,
		PatientID:     appointment.PatientID,
		Firstname:     appointment.Patient.User.Firstname,
		Lastname:      appointment.Patient.User.Lastname,
		Gender:        appointment.Patient.User.Gender,
		Phone:         appointment.Patient.User.PhoneNumber,
		Email:         appointment.Patient.User.Email,
		Date:          appointment.Date,
		StartTime:     dto.ClockHHMM(appointment.StartTime),
		EndTime:       dto.ClockHHMM(appointment.EndTime),
		ChannelID:     appointment.ChannelID,
		Status:        appointment.Status,
		DoneURL:       dashboardBasePath + appointment.ID.String() + "/done",
		CancelURL:     dashboardBasePath + appointment.ID.String() + "/cancel",
		AiAnalysisURL: "/api/patients/" + appointment.PatientID.String() + "/ai-analysis",
	}
	if latest != nil {
		detail.AiAnalyzer = &dto.AiAnalyzerResponse{
			Complaint:  latest.Complaint,
			Stress:     latest.Stress,
			Anxiety:    latest.Anxiety,
			Depression: latest.Depression,
			CreatedAt:  latest.CreatedAt,
		}
	}

	return c.JSON(dto.Success("Appointment retrieved successfully", detail))
}
