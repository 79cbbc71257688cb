package feedback

import (
	"context"
	"net/url"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
	"github.com/rajivgeraev/flippy-motors/internal/models"
)

// FeedbackService отправляет события взаимодействия и управляет избранным на сервере
type FeedbackService struct {
	api *apiclient.Client
}

// NewFeedbackService создает новый экземпляр FeedbackService
func NewFeedbackService(api *apiclient.Client) *FeedbackService {
	return &FeedbackService{api: api}
}

// Bound возвращает сервис, работающий от имени сессии
func (s *FeedbackService) Bound(sess apiclient.Session) *FeedbackService {
	return &FeedbackService{api: s.api.Bound(sess)}
}

// Track отправляет событие взаимодействия
func (s *FeedbackService) Track(ctx context.Context, req models.FeedbackRequest) error {
	return s.api.PostJSON(ctx, "/feedback", req, nil)
}

// Favorites возвращает ID избранных объявлений с сервера
func (s *FeedbackService) Favorites(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.api.Get(ctx, "/favorites", nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// AddFavorite добавляет объявление в избранное на сервере
func (s *FeedbackService) AddFavorite(ctx context.Context, vehicleID string) error {
	return s.api.PostJSON(ctx, "/favorites/"+url.PathEscape(vehicleID), nil, nil)
}

// RemoveFavorite удаляет объявление из избранного на сервере
func (s *FeedbackService) RemoveFavorite(ctx context.Context, vehicleID string) error {
	return s.api.Delete(ctx, "/favorites/"+url.PathEscape(vehicleID), nil)
}
