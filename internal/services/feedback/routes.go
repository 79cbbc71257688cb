package feedback

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/flippy-motors/internal/middleware"
	"github.com/rajivgeraev/flippy-motors/internal/models"
)

// SetupRoutes настраивает маршруты для событий и избранного
func (s *FeedbackService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Защищенные маршруты (требуют авторизации)
	api.Post("/feedback", s.TrackHandler, middleware.RequireAuth())

	favorites := api.Group("/favorites")
	favorites.Use(middleware.RequireAuth())
	favorites.Get("/", s.GetFavoritesHandler)
	favorites.Post("/:id", s.AddFavoriteHandler)
	favorites.Delete("/:id", s.RemoveFavoriteHandler)
}

// TrackHandler отправляет событие взаимодействия
func (s *FeedbackService) TrackHandler(c fiber.Ctx) error {
	var req models.FeedbackRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.VehicleID == "" || !req.Action.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "vehicle_id and a known action are required"})
	}

	sess := middleware.SessionFrom(c)
	if err := s.Bound(sess.Auth).Track(c.Context(), req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFavoritesHandler возвращает избранное с сервера и локальный список.
// С ?sync=true локальный список заменяется серверным.
func (s *FeedbackService) GetFavoritesHandler(c fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	remote, err := s.Bound(sess.Auth).Favorites(c.Context())
	if err != nil {
		return err
	}

	if c.Query("sync") == "true" {
		if err := sess.Favorites.Replace(c.Context(), remote); err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{
		"remote": remote,
		"local":  sess.Favorites.IDs(),
	})
}

// AddFavoriteHandler добавляет в избранное на сервере, затем локально
func (s *FeedbackService) AddFavoriteHandler(c fiber.Ctx) error {
	id := strings.Clone(c.Params("id"))
	sess := middleware.SessionFrom(c)

	if err := s.Bound(sess.Auth).AddFavorite(c.Context(), id); err != nil {
		return err
	}
	if err := sess.Favorites.Add(c.Context(), id); err != nil {
		log.Printf("❌ Ошибка сохранения избранного %s: %v", id, err)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"is_favorite": true,
		"favorites":   sess.Favorites.IDs(),
	})
}

// RemoveFavoriteHandler удаляет из избранного на сервере, затем локально
func (s *FeedbackService) RemoveFavoriteHandler(c fiber.Ctx) error {
	id := strings.Clone(c.Params("id"))
	sess := middleware.SessionFrom(c)

	if err := s.Bound(sess.Auth).RemoveFavorite(c.Context(), id); err != nil {
		return err
	}
	if err := sess.Favorites.Remove(c.Context(), id); err != nil {
		log.Printf("❌ Ошибка удаления избранного %s: %v", id, err)
		return err
	}
	return c.JSON(fiber.Map{
		"is_favorite": false,
		"favorites":   sess.Favorites.IDs(),
	})
}
