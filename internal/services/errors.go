package services

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrPsychologistNotFound = errors.New("psychologist not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrForbidden            = errors.New("you do not have access to this appointment")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or expired refresh token")
	ErrTerminalStatus       = errors.New("completed or canceled appointments cannot change status")
)
