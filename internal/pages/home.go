package pages

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"

	"github.com/rajivgeraev/flippy-motors/internal/catalog"
	"github.com/rajivgeraev/flippy-motors/internal/middleware"
	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/search"
	"github.com/rajivgeraev/flippy-motors/internal/session"
)

// HomeView данные главной страницы
type HomeView struct {
	Featured        []Card               `json:"featured"`
	Origin          string               `json:"origin"`
	Recommendations []RecommendationCard `json:"recommendations"`
	Categories      []Category           `json:"categories"`
	FavoritesCount  int                  `json:"favorites_count"`
}

// featuredFilters новые объявления для главной
func featuredFilters() models.SearchFilters {
	f := models.SearchFilters{SortBy: "id", SortOrder: search.OrderDesc}
	return search.WithPageSize(f, FeaturedCount)
}

// HomeHandler собирает главную: свежие объявления и, после входа, рекомендации
func (s *PagesService) HomeHandler(c fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	view, err := s.home(c.Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (s *PagesService) home(ctx context.Context, sess *session.Session) (*HomeView, error) {
	var (
		featured *catalog.Page
		recos    []models.Recommendation
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page, err := s.source(sess).Search(gctx, featuredFilters())
		if err != nil {
			return err
		}
		featured = page
		return nil
	})

	// Рекомендации необязательны, ошибка не ломает страницу
	if sess.Auth.IsAuthenticated() {
		g.Go(func() error {
			list, err := s.recos.Bound(sess.Auth).Hybrid(gctx, HomeRecommendations)
			if err != nil {
				log.Printf("⚠️ Не удалось загрузить рекомендации для главной: %v", err)
				return nil
			}
			recos = list
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &HomeView{
		Featured:        newCards(featured.Results, sess.Favorites, s.images),
		Origin:          featured.Origin,
		Recommendations: newRecommendationCards(recos, sess.Favorites, s.images),
		Categories:      categoryList(),
		FavoritesCount:  sess.Favorites.Count(),
	}, nil
}
