package catalog

import (
	"cmp"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/search"
)

//go:embed mock_vehicles.json
var mockVehiclesJSON []byte

// StubSource ищет по фиксированному набору объявлений в памяти.
// Фильтры применяются так же, как на бэкенде: подстроки без учёта регистра,
// числовые границы включительно.
type StubSource struct {
	vehicles []models.Vehicle
}

// NewStubSource создаёт источник по заданному набору
func NewStubSource(vehicles []models.Vehicle) *StubSource {
	return &StubSource{vehicles: slices.Clone(vehicles)}
}

// NewMockSource создаёт источник со встроенными демонстрационными данными
func NewMockSource() (*StubSource, error) {
	vehicles, err := MockVehicles()
	if err != nil {
		return nil, err
	}
	return NewStubSource(vehicles), nil
}

// MockVehicles возвращает встроенный набор объявлений
func MockVehicles() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := json.Unmarshal(mockVehiclesJSON, &vehicles); err != nil {
		return nil, fmt.Errorf("ошибка разбора демонстрационных данных: %w", err)
	}
	return vehicles, nil
}

// Search фильтрует, сортирует и режет набор на страницы
func (s *StubSource) Search(ctx context.Context, filters models.SearchFilters) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := make([]models.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		if matches(v, filters) {
			matched = append(matched, v)
		}
	}
	sortVehicles(matched, filters.SortBy, filters.SortOrder)

	page := search.PageOf(filters)
	pageSize := search.PageSizeOf(filters)
	pagination := search.NewPagination(len(matched), page, pageSize)

	// Номер страницы за пределами выборки даёт пустую страницу без переполнения
	start, end := len(matched), len(matched)
	if page <= pagination.TotalPages {
		start = (page - 1) * pageSize
		end = min(start+pageSize, len(matched))
	}

	return &Page{
		SearchResponse: models.SearchResponse{
			Results:    slices.Clone(matched[start:end]),
			Total:      len(matched),
			Page:       page,
			PageSize:   pageSize,
			TotalPages: pagination.TotalPages,
		},
		Origin: OriginStub,
	}, nil
}

func matches(v models.Vehicle, f models.SearchFilters) bool {
	if f.Query != "" && !containsAny(f.Query, v.Title, v.Brand, v.Model) {
		return false
	}
	textFilters := []struct {
		want  string
		field *string
	}{
		{f.Brand, v.Brand},
		{f.Model, v.Model},
		{f.FuelType, v.FuelType},
		{f.Transmission, v.Transmission},
		{f.BodyType, v.BodyType},
		{f.Location, v.Location},
	}
	for _, tf := range textFilters {
		if tf.want != "" && !containsAny(tf.want, tf.field) {
			return false
		}
	}

	if f.YearMin != nil && (v.Year == nil || *v.Year < *f.YearMin) {
		return false
	}
	if f.YearMax != nil && (v.Year == nil || *v.Year > *f.YearMax) {
		return false
	}
	if f.PriceMin != nil && (v.Price == nil || *v.Price < float64(*f.PriceMin)) {
		return false
	}
	if f.PriceMax != nil && (v.Price == nil || *v.Price > float64(*f.PriceMax)) {
		return false
	}
	if f.MileageMax != nil && (v.Mileage == nil || *v.Mileage > float64(*f.MileageMax)) {
		return false
	}
	return true
}

func containsAny(needle string, fields ...*string) bool {
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if f != nil && strings.Contains(strings.ToLower(*f), needle) {
			return true
		}
	}
	return false
}

// sortVehicles сортирует как бэкенд: по умолчанию id по убыванию,
// отсутствующие значения всегда в конце
func sortVehicles(vs []models.Vehicle, sortBy, order string) {
	if sortBy == "" {
		sortBy, order = "id", search.OrderDesc
	}
	if order == "" {
		order = search.OrderDesc
	}

	key := func(v models.Vehicle) (float64, bool) {
		switch sortBy {
		case "price":
			return deref(v.Price)
		case "mileage":
			return deref(v.Mileage)
		case "year":
			if v.Year == nil {
				return 0, false
			}
			return float64(*v.Year), true
		default:
			return float64(v.ID), true
		}
	}

	slices.SortStableFunc(vs, func(a, b models.Vehicle) int {
		ka, okA := key(a)
		kb, okB := key(b)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		if order == search.OrderDesc {
			return cmp.Compare(kb, ka)
		}
		return cmp.Compare(ka, kb)
	})
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
