// Package pages собирает данные страниц витрины: главная, поиск, раздел,
// карточка автомобиля, сравнение, избранное и рекомендации.
package pages

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
	"github.com/rajivgeraev/flippy-motors/internal/catalog"
	"github.com/rajivgeraev/flippy-motors/internal/loader"
	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/services/cloudinary"
	"github.com/rajivgeraev/flippy-motors/internal/services/feedback"
	"github.com/rajivgeraev/flippy-motors/internal/services/recommendation"
	"github.com/rajivgeraev/flippy-motors/internal/services/vehicle"
	"github.com/rajivgeraev/flippy-motors/internal/session"
)

// Размеры выборок, которые запрашивают страницы
const (
	SearchPageSize      = 20
	FeaturedCount       = 8
	HomeRecommendations = 8
	SimilarCount        = 4
	RecommendationCount = 20
)

// trackTimeout ограничивает фоновую отправку событий
const trackTimeout = 5 * time.Second

// PagesService собирает данные страниц из доменных сервисов
type PagesService struct {
	vehicles *vehicle.VehicleService
	recos    *recommendation.RecommendationService
	feedback *feedback.FeedbackService
	images   *cloudinary.CloudinaryService
	fallback catalog.Source
}

// NewPagesService создаёт сервис страниц. fallback может быть nil,
// тогда страницы поиска работают только с бэкендом.
func NewPagesService(
	vehicles *vehicle.VehicleService,
	recos *recommendation.RecommendationService,
	feedbackService *feedback.FeedbackService,
	images *cloudinary.CloudinaryService,
	fallback catalog.Source,
) *PagesService {
	return &PagesService{
		vehicles: vehicles,
		recos:    recos,
		feedback: feedbackService,
		images:   images,
		fallback: fallback,
	}
}

// source возвращает источник поиска для сессии
func (s *PagesService) source(sess *session.Session) catalog.Source {
	live := catalog.NewLiveSource(s.vehicles.Bound(sess.Auth))
	if s.fallback == nil {
		return live
	}
	return &catalog.FallbackSource{Primary: live, Fallback: s.fallback}
}

// track отправляет событие, если сессия авторизована. Ошибки только логируются.
func (s *PagesService) track(ctx context.Context, sess *session.Session, req models.FeedbackRequest) {
	if !sess.Auth.IsAuthenticated() {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), trackTimeout)
	defer cancel()

	if err := s.feedback.Bound(sess.Auth).Track(ctx, req); err != nil {
		log.Printf("⚠️ Не удалось отправить событие %s для %s: %v", req.Action, req.VehicleID, err)
	}
}

// respondState отдаёт состояние загрузки с подходящим статусом
func respondState[T any](c fiber.Ctx, state loader.State[T], err error) error {
	switch {
	case err == nil:
		return c.JSON(state)
	case errors.Is(err, loader.ErrStale):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Request superseded by a newer one",
			"state": state,
		})
	default:
		code := apiclient.StatusOf(err)
		if code == 0 {
			code = fiber.StatusBadGateway
		}
		return c.Status(code).JSON(state)
	}
}
