package pages

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
	"github.com/rajivgeraev/flippy-motors/internal/middleware"
	"github.com/rajivgeraev/flippy-motors/internal/models"
)

// VehicleView данные карточки автомобиля
type VehicleView struct {
	Vehicle    models.Vehicle       `json:"vehicle"`
	Price      string               `json:"price"`
	Mileage    string               `json:"mileage,omitempty"`
	Thumbnail  string               `json:"thumbnail,omitempty"`
	IsFavorite bool                 `json:"is_favorite"`
	Similar    []RecommendationCard `json:"similar"`
}

// ContactView контакты продавца
type ContactView struct {
	VehicleID   int64  `json:"vehicle_id"`
	SellerName  string `json:"seller_name,omitempty"`
	SellerPhone string `json:"seller_phone,omitempty"`
	URL         string `json:"url,omitempty"`
}

// VehicleHandler возвращает объявление и похожие автомобили
func (s *PagesService) VehicleHandler(c fiber.Ctx) error {
	id := strings.Clone(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Vehicle ID is required"})
	}

	sess := middleware.SessionFrom(c)
	ctx := c.Context()

	var (
		v       *models.Vehicle
		similar []models.Recommendation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		v, err = s.vehicles.Bound(sess.Auth).GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		list, err := s.recos.Bound(sess.Auth).Similar(gctx, id, SimilarCount)
		if err != nil {
			log.Printf("⚠️ Не удалось загрузить похожие для %s: %v", id, err)
			return nil
		}
		similar = list
		return nil
	})

	// Просмотр отправляется независимо от результата загрузки
	go s.track(ctx, sess, models.FeedbackRequest{VehicleID: id, Action: models.ActionView})

	if err := g.Wait(); err != nil {
		if apiclient.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
		}
		return err
	}

	view := VehicleView{
		Vehicle:    *v,
		Price:      FormatPrice(v.Price),
		Mileage:    FormatMileage(v.Mileage),
		IsFavorite: sess.Favorites.IsFavorite(v.IDString()),
		Similar:    newRecommendationCards(similar, sess.Favorites, s.images),
	}
	if img := str(v.ImageURL); img != "" {
		view.Thumbnail = s.images.Thumbnail(img)
	}
	return c.JSON(view)
}

// ToggleFavoriteHandler добавляет или убирает объявление из избранного.
// Сначала меняется состояние на сервере, затем локальный список.
func (s *PagesService) ToggleFavoriteHandler(c fiber.Ctx) error {
	id := strings.Clone(c.Params("id"))
	sess := middleware.SessionFrom(c)
	ctx := c.Context()
	api := s.feedback.Bound(sess.Auth)

	if sess.Favorites.IsFavorite(id) {
		if err := api.RemoveFavorite(ctx, id); err != nil {
			return err
		}
		if err := sess.Favorites.Remove(ctx, id); err != nil {
			return err
		}
	} else {
		if err := api.AddFavorite(ctx, id); err != nil {
			return err
		}
		if err := sess.Favorites.Add(ctx, id); err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{
		"vehicle_id":      id,
		"is_favorite":     sess.Favorites.IsFavorite(id),
		"favorites_count": sess.Favorites.Count(),
	})
}

// ContactHandler отмечает интерес к контактам и возвращает данные продавца
func (s *PagesService) ContactHandler(c fiber.Ctx) error {
	id := strings.Clone(c.Params("id"))
	sess := middleware.SessionFrom(c)
	ctx := c.Context()

	v, err := s.vehicles.Bound(sess.Auth).GetByID(ctx, id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
		}
		return err
	}

	s.track(ctx, sess, models.FeedbackRequest{VehicleID: v.IDString(), Action: models.ActionContact})

	return c.JSON(ContactView{
		VehicleID:   v.ID,
		SellerName:  str(v.SellerName),
		SellerPhone: str(v.SellerPhone),
		URL:         str(v.URL),
	})
}

// ClickHandler отмечает переход к объявлению из списка
func (s *PagesService) ClickHandler(c fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	s.track(c.Context(), sess, models.FeedbackRequest{
		VehicleID: strings.Clone(c.Params("id")),
		Action:    models.ActionClick,
		Context:   clickContext(c.Query("from")),
	})
	return c.SendStatus(fiber.StatusNoContent)
}

func clickContext(from string) map[string]any {
	if from == "" {
		return nil
	}
	return map[string]any{"source": from}
}
