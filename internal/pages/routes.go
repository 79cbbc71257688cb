package pages

import (
	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/flippy-motors/internal/middleware"
)

// SetupRoutes настраивает маршруты страниц
func (s *PagesService) SetupRoutes(app *fiber.App) {
	pages := app.Group("/pages")

	// Публичные страницы
	pages.Get("/home", s.HomeHandler)
	pages.Get("/search", s.SearchHandler)
	pages.Get("/search/state", s.SearchStateHandler)
	pages.Get("/category/:name", s.CategoryHandler)
	pages.Get("/vehicle/:id", s.VehicleHandler)
	pages.Post("/vehicle/:id/click", s.ClickHandler)
	pages.Post("/vehicle/:id/contact", s.ContactHandler)
	pages.Get("/compare", s.CompareHandler)

	// Страницы, требующие входа. Middleware после обработчика выполняется раньше него.
	requireAuth := middleware.RequireAuth()
	pages.Post("/vehicle/:id/favorite", s.ToggleFavoriteHandler, requireAuth)
	pages.Get("/favorites", s.FavoritesHandler, requireAuth)
	pages.Get("/recommendations", s.RecommendationsHandler, requireAuth)
}
