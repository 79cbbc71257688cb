package vehicle

import (
	"context"
	"net/url"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/search"
)

// VehicleService представляет сервис для работы с объявлениями
type VehicleService struct {
	api *apiclient.Client
}

// NewVehicleService создает новый экземпляр VehicleService
func NewVehicleService(api *apiclient.Client) *VehicleService {
	return &VehicleService{api: api}
}

// Bound возвращает сервис, работающий от имени сессии
func (s *VehicleService) Bound(sess apiclient.Session) *VehicleService {
	return &VehicleService{api: s.api.Bound(sess)}
}

// Search ищет объявления по фильтрам
func (s *VehicleService) Search(ctx context.Context, filters models.SearchFilters) (*models.SearchResponse, error) {
	var resp models.SearchResponse
	if err := s.api.Get(ctx, "/search", search.BackendParams(filters), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetByID возвращает одно объявление
func (s *VehicleService) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := s.api.Get(ctx, "/listing/"+url.PathEscape(id), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Compare возвращает объявления для сравнения
func (s *VehicleService) Compare(ctx context.Context, ids []string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.api.PostJSON(ctx, "/compare", models.CompareRequest{VehicleIDs: ids}, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}
