// Package catalog источники данных для страниц поиска: живой бэкенд,
// встроенный набор демонстрационных объявлений и их комбинация с откатом.
package catalog

import (
	"context"
	"errors"
	"log"

	"github.com/rajivgeraev/flippy-motors/internal/models"
)

// Происхождение данных страницы
const (
	OriginLive = "live"
	OriginStub = "stub"
)

// Page страница результатов с указанием источника
type Page struct {
	models.SearchResponse
	Origin string `json:"origin"`
}

// Source источник результатов поиска
type Source interface {
	Search(ctx context.Context, filters models.SearchFilters) (*Page, error)
}

// Searcher то, что умеет искать на бэкенде
type Searcher interface {
	Search(ctx context.Context, filters models.SearchFilters) (*models.SearchResponse, error)
}

// LiveSource ищет через бэкенд
type LiveSource struct {
	searcher Searcher
}

// NewLiveSource создаёт источник поверх сервиса объявлений
func NewLiveSource(searcher Searcher) *LiveSource {
	return &LiveSource{searcher: searcher}
}

// Search выполняет запрос к бэкенду
func (s *LiveSource) Search(ctx context.Context, filters models.SearchFilters) (*Page, error) {
	resp, err := s.searcher.Search(ctx, filters)
	if err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		log.Printf("⚠️ Некорректная страница результатов от бэкенда: %v", err)
	}
	return &Page{SearchResponse: *resp, Origin: OriginLive}, nil
}

// FallbackSource обращается к Primary и при ошибке берёт данные из Fallback
type FallbackSource struct {
	Primary  Source
	Fallback Source
}

// Search выполняет поиск с откатом на запасной источник.
// Отмена контекста не считается поводом для отката.
func (s *FallbackSource) Search(ctx context.Context, filters models.SearchFilters) (*Page, error) {
	page, err := s.Primary.Search(ctx, filters)
	if err == nil {
		return page, nil
	}
	if errors.Is(err, context.Canceled) || s.Fallback == nil {
		return nil, err
	}

	log.Printf("⚠️ Бэкенд недоступен, используем демонстрационные данные: %v", err)
	return s.Fallback.Search(ctx, filters)
}
