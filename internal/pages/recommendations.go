package pages

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
	"github.com/rajivgeraev/flippy-motors/internal/middleware"
	"github.com/rajivgeraev/flippy-motors/internal/models"
)

// Режимы страницы рекомендаций
const (
	ModeHybrid    = "hybrid"
	ModeCandidate = "candidate"
)

// RecommendationsView данные страницы рекомендаций
type RecommendationsView struct {
	Mode            string               `json:"mode"`
	Recommendations []RecommendationCard `json:"recommendations"`
	Empty           bool                 `json:"empty"`
}

// RecommendationsHandler возвращает рекомендации в режиме ?mode=hybrid|candidate.
// Если гибридные рекомендации недоступны, показываются кандидаты.
func (s *PagesService) RecommendationsHandler(c fiber.Ctx) error {
	mode := c.Query("mode", ModeHybrid)
	if mode != ModeHybrid && mode != ModeCandidate {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mode must be hybrid or candidate"})
	}

	sess := middleware.SessionFrom(c)
	ctx := c.Context()
	api := s.recos.Bound(sess.Auth)

	var (
		recos []models.Recommendation
		err   error
	)
	if mode == ModeHybrid {
		recos, err = api.Hybrid(ctx, RecommendationCount)
		if err != nil && !apiclient.IsUnauthorized(err) {
			log.Printf("⚠️ Гибридные рекомендации недоступны, берём кандидатов: %v", err)
			mode = ModeCandidate
			recos, err = api.Candidates(ctx, RecommendationCount)
		}
	} else {
		recos, err = api.Candidates(ctx, RecommendationCount)
	}
	if err != nil {
		return err
	}

	return c.JSON(RecommendationsView{
		Mode:            mode,
		Recommendations: newRecommendationCards(recos, sess.Favorites, s.images),
		Empty:           len(recos) == 0,
	})
}
