package recommendation

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
	"github.com/rajivgeraev/flippy-motors/internal/models"
)

// Лимиты по умолчанию
const (
	DefaultListLimit    = 20
	DefaultSimilarLimit = 10
)

// RecommendationService обращения к /reco/* бэкенда
type RecommendationService struct {
	api *apiclient.Client
}

// NewRecommendationService создает новый экземпляр RecommendationService
func NewRecommendationService(api *apiclient.Client) *RecommendationService {
	return &RecommendationService{api: api}
}

// Bound возвращает сервис, работающий от имени сессии
func (s *RecommendationService) Bound(sess apiclient.Session) *RecommendationService {
	return &RecommendationService{api: s.api.Bound(sess)}
}

// Candidates возвращает кандидатов для пользователя
func (s *RecommendationService) Candidates(ctx context.Context, limit int) ([]models.Recommendation, error) {
	return s.list(ctx, "/reco/candidate", limit, DefaultListLimit)
}

// Hybrid возвращает гибридные рекомендации
func (s *RecommendationService) Hybrid(ctx context.Context, limit int) ([]models.Recommendation, error) {
	return s.list(ctx, "/reco/hybrid", limit, DefaultListLimit)
}

// Similar возвращает автомобили, похожие на указанный
func (s *RecommendationService) Similar(ctx context.Context, vehicleID string, limit int) ([]models.Recommendation, error) {
	return s.list(ctx, "/reco/similar/"+url.PathEscape(vehicleID), limit, DefaultSimilarLimit)
}

func (s *RecommendationService) list(ctx context.Context, path string, limit, fallback int) ([]models.Recommendation, error) {
	if limit <= 0 {
		limit = fallback
	}
	var recos []models.Recommendation
	if err := s.api.Get(ctx, path, map[string]string{"limit": strconv.Itoa(limit)}, &recos); err != nil {
		return nil, err
	}
	return recos, nil
}
