package routes

import (
	"time"

	"github.com/calmind-app/calmind-backend/internal/config"
	"github.com/calmind-app/calmind-backend/internal/handlers"
	"github.com/calmind-app/calmind-backend/internal/middleware"
	"github.com/calmind-app/calmind-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	patientHandler *handlers.PatientHandler,
	psychologistHandler *handlers.PsychologistHandler,
	appointmentHandler *handlers.AppointmentHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public verified psychologist listing
	api.Get("/psychologists", patientHandler.Psychologists)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.RegisterPatient)
	auth.Post("/register/psychologist", authHandler.RegisterPsychologist)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Auth — protected. JWT middleware is applied per-route so it never
	// touches the public auth endpoints above.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/profile", middleware.JWTProtected(cfg), authHandler.Profile)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Patients (protected)
	patients := api.Group("/patients", middleware.JWTProtected(cfg))
	patients.Get("/", patientHandler.List)
	patients.Get("/:id", patientHandler.Get)
	patients.Put("/:id", patientHandler.Update)
	patients.Delete("/:id", patientHandler.Delete)
	patients.Get("/:id/appointments", patientHandler.Appointments)
	patients.Get("/:id/ai-analysis", patientHandler.AIAnalysis)

	// Appointments (protected)
	appointments := api.Group("/appointments", middleware.JWTProtected(cfg))
	appointments.Get("/", appointmentHandler.List)
	appointments.Post("/", appointmentHandler.Create)
	appointments.Get("/psychologist/:id", appointmentHandler.ByPsychologist)
	appointments.Get("/patient/:id", appointmentHandler.ByPatient)
	appointments.Get("/:id", appointmentHandler.Get)
	appointments.Put("/:id", appointmentHandler.Update)
	appointments.Delete("/:id", appointmentHandler.Delete)

	// Psychologist dashboard (protected + psychologist role)
	psychologist := api.Group("/psychologist",
		middleware.JWTProtected(cfg),
		middleware.RoleRequired(db, models.RolePsychologist))
	psychologist.Get("/consultations", psychologistHandler.Consultations)
	psychologist.Get("/patients", psychologistHandler.Patients)
	psychologist.Get("/appointments/:id", psychologistHandler.Detail)
	psychologist.Put("/appointments/:id/accept", psychologistHandler.Accept)
	psychologist.Put("/appointments/:id/done", psychologistHandler.Done)
	psychologist.Put("/appointments/:id/cancel", psychologistHandler.Cancel)

	// Admin panel (protected + admin role)
	admin := api.Group("/admin",
		middleware.JWTProtected(cfg),
		middleware.RoleRequired(db, models.RoleAdmin))
	admin.Get("/home", adminHandler.Home)
	admin.Put("/psychologists/:id/verify", adminHandler.VerifyPsychologist)
}
