package auth

import (
	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/flippy-motors/internal/middleware"
	"github.com/rajivgeraev/flippy-motors/internal/models"
)

// SetupRoutes регистрирует маршруты в Fiber
func (s *AuthService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	api.Post("/login", s.LoginHandler)
	api.Post("/register", s.RegisterHandler)
	api.Post("/logout", s.LogoutHandler)
	api.Get("/session", s.SessionHandler)

	// Защищенные маршруты
	api.Get("/me", s.MeHandler, middleware.RequireAuth())
}

// LoginHandler проверяет форму, входит и сохраняет сессию
func (s *AuthService) LoginHandler(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := ValidateLogin(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	sess := middleware.SessionFrom(c)
	resp, err := s.Bound(sess.Auth).Login(c.Context(), req)
	if err != nil {
		return err
	}
	if err := sess.Auth.SetAuth(c.Context(), resp.User, resp.AccessToken); err != nil {
		return err
	}
	return c.JSON(sess.Auth.Snapshot())
}

// RegisterHandler регистрирует пользователя и сразу авторизует сессию
func (s *AuthService) RegisterHandler(c fiber.Ctx) error {
	var payload struct {
		models.RegisterRequest
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := ValidateRegister(payload.RegisterRequest, payload.ConfirmPassword); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	sess := middleware.SessionFrom(c)
	resp, err := s.Bound(sess.Auth).Register(c.Context(), payload.RegisterRequest)
	if err != nil {
		return err
	}
	if err := sess.Auth.SetAuth(c.Context(), resp.User, resp.AccessToken); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sess.Auth.Snapshot())
}

// MeHandler возвращает профиль с бэкенда
func (s *AuthService) MeHandler(c fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	user, err := s.Bound(sess.Auth).Me(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// SessionHandler возвращает локальное состояние сессии без обращения к бэкенду
func (s *AuthService) SessionHandler(c fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	return c.JSON(fiber.Map{
		"auth":            sess.Auth.Snapshot(),
		"favorites_count": sess.Favorites.Count(),
	})
}

// LogoutHandler очищает локальную сессию. Избранное не трогаем.
func (s *AuthService) LogoutHandler(c fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	if err := s.Logout(c.Context(), sess.Auth); err != nil {
		return err
	}
	return c.JSON(sess.Auth.Snapshot())
}
