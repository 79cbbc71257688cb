package recommendation

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/flippy-motors/internal/middleware"
)

// SetupRoutes настраивает маршруты для API рекомендаций
func (s *RecommendationService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/reco")

	api.Get("/candidate", func(c fiber.Ctx) error {
		return s.respond(c, func(svc *RecommendationService, limit int) (any, error) {
			return svc.Candidates(c.Context(), limit)
		})
	})
	api.Get("/hybrid", func(c fiber.Ctx) error {
		return s.respond(c, func(svc *RecommendationService, limit int) (any, error) {
			return svc.Hybrid(c.Context(), limit)
		})
	})
	api.Get("/similar/:id", func(c fiber.Ctx) error {
		return s.respond(c, func(svc *RecommendationService, limit int) (any, error) {
			return svc.Similar(c.Context(), c.Params("id"), limit)
		})
	})
}

func (s *RecommendationService) respond(c fiber.Ctx, call func(*RecommendationService, int) (any, error)) error {
	// Некорректный limit означает лимит по умолчанию
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	sess := middleware.SessionFrom(c)
	recos, err := call(s.Bound(sess.Auth), limit)
	if err != nil {
		return err
	}
	return c.JSON(recos)
}
