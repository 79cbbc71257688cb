package vehicle

import (
	"net/url"

	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/flippy-motors/internal/middleware"
	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/search"
)

// SetupRoutes настраивает маршруты для API объявлений
func (s *VehicleService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/search", s.SearchHandler)
	api.Get("/listing/:id", s.GetListingHandler)
	api.Post("/compare", s.CompareHandler)
}

// SearchHandler проксирует поиск с фильтрами из строки запроса
func (s *VehicleService) SearchHandler(c fiber.Ctx) error {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query string"})
	}

	sess := middleware.SessionFrom(c)
	resp, err := s.Bound(sess.Auth).Search(c.Context(), search.ParseQuery(values))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetListingHandler возвращает одно объявление
func (s *VehicleService) GetListingHandler(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Vehicle ID is required"})
	}

	sess := middleware.SessionFrom(c)
	v, err := s.Bound(sess.Auth).GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(v)
}

// CompareHandler возвращает объявления для сравнения
func (s *VehicleService) CompareHandler(c fiber.Ctx) error {
	var req models.CompareRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if len(req.VehicleIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "vehicle_ids is required"})
	}

	sess := middleware.SessionFrom(c)
	vehicles, err := s.Bound(sess.Auth).Compare(c.Context(), req.VehicleIDs)
	if err != nil {
		return err
	}
	return c.JSON(vehicles)
}
