package handlers

import (
	"errors"

	"github.com/calmind-app/calmind-backend/internal/actor"
	"github.com/calmind-app/calmind-backend/internal/dto"
	"github.com/calmind-app/calmind-backend/internal/services"
	"github.com/calmind-app/calmind-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterPatient(c *fiber.Ctx) error {
	var req dto.RegisterPatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if errs := validation.Struct(&req); errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationFailed(errs))
	}

	resp, err := h.authService.RegisterPatient(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationFailed(
				map[string][]string{"email": {"The email has already been taken."}}))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to register"))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.Success("Patient registered successfully", resp))
}

func (h *AuthHandler) RegisterPsychologist(c *fiber.Ctx) error {
	var req dto.RegisterPsychologistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if errs := validation.Struct(&req); errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationFailed(errs))
	}

	resp, err := h.authService.RegisterPsychologist(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationFailed(
				map[string][]string{"email": {"The email has already been taken."}}))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to register"))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.Success("Psychologist registered successfully", resp))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if errs := validation.Struct(&req); errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationFailed(errs))
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Internal server error"))
	}

	return c.JSON(dto.Success("Login successful", resp))
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Internal server error"))
	}

	return c.JSON(dto.Success("Token refreshed", resp))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	if err := h.authService.Logout(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to logout"))
	}

	return c.JSON(dto.Success("Logged out successfully", nil))
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	resp, err := h.authService.Profile(act.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("User not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to load profile"))
	}

	return c.JSON(dto.Success("Profile retrieved successfully", resp))
}

func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	if err := h.authService.DeleteAccount(act.UserID, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Incorrect password"))
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("User not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to delete account"))
	}

	return c.JSON(dto.Success("Account deleted successfully", nil))
}
