package pages

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
	"github.com/rajivgeraev/flippy-motors/internal/middleware"
	"github.com/rajivgeraev/flippy-motors/internal/models"
)

// maxParallelFetches ограничивает число одновременных запросов объявлений
const maxParallelFetches = 8

// FavoritesView данные страницы избранного
type FavoritesView struct {
	Count    int      `json:"count"`
	Vehicles []Card   `json:"vehicles"`
	Missing  []string `json:"missing"`
	Empty    bool     `json:"empty"`
}

// FavoritesHandler загружает все объявления из локального избранного.
// Снятые с продажи (404) пропускаются, прочие ошибки прерывают загрузку.
func (s *PagesService) FavoritesHandler(c fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	ids := sess.Favorites.IDs()
	api := s.vehicles.Bound(sess.Auth)

	loaded := make([]*models.Vehicle, len(ids))

	g, gctx := errgroup.WithContext(c.Context())
	g.SetLimit(maxParallelFetches)
	for i, id := range ids {
		g.Go(func() error {
			v, err := api.GetByID(gctx, id)
			if err != nil {
				if apiclient.IsNotFound(err) {
					log.Printf("⚠️ Объявление %s из избранного не найдено", id)
					return nil
				}
				return err
			}
			loaded[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Порядок совпадает с порядком добавления в избранное
	vehicles := make([]models.Vehicle, 0, len(ids))
	missing := make([]string, 0)
	for i, v := range loaded {
		if v == nil {
			missing = append(missing, ids[i])
			continue
		}
		vehicles = append(vehicles, *v)
	}

	return c.JSON(FavoritesView{
		Count:    len(ids),
		Vehicles: newCards(vehicles, sess.Favorites, s.images),
		Missing:  missing,
		Empty:    len(vehicles) == 0,
	})
}
