package pages

import (
	"context"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/flippy-motors/internal/catalog"
	"github.com/rajivgeraev/flippy-motors/internal/loader"
	"github.com/rajivgeraev/flippy-motors/internal/middleware"
	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/search"
	"github.com/rajivgeraev/flippy-motors/internal/session"
)

// Ключи состояний страниц в сессии
const (
	searchLoaderKey   = "pages.search"
	categoryLoaderKey = "pages.category"
)

// sortParam значение выпадающего списка сортировки ("-price")
const sortParam = "sort"

// SearchView данные страницы поиска
type SearchView struct {
	Filters     models.SearchFilters `json:"filters"`
	Query       string               `json:"query"`
	Sort        string               `json:"sort"`
	SortOptions []search.SortOption  `json:"sort_options"`
	Results     []Card               `json:"results"`
	Pagination  search.Pagination    `json:"pagination"`
	Origin      string               `json:"origin"`
	Empty       bool                 `json:"empty"`
	Category    *Category            `json:"category,omitempty"`
}

func searchLoader(sess *session.Session, key string) *loader.Loader[*SearchView] {
	return session.Value(sess, key, loader.New[*SearchView])
}

// ParseSearchFilters разбирает адресную строку страницы поиска.
// Параметр sort из выпадающего списка важнее пары sort_by/sort_order.
func ParseSearchFilters(values url.Values) models.SearchFilters {
	f := search.ParseQuery(values)
	if _, ok := values[sortParam]; ok {
		f.SortBy, f.SortOrder = search.DecodeSort(values.Get(sortParam))
	}
	return search.WithPageSize(f, SearchPageSize)
}

// SearchHandler выполняет поиск и возвращает состояние страницы
func (s *PagesService) SearchHandler(c fiber.Ctx) error {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query string"})
	}

	sess := middleware.SessionFrom(c)
	filters := ParseSearchFilters(values)

	state, err := searchLoader(sess, searchLoaderKey).Run(c.Context(), func(ctx context.Context) (*SearchView, error) {
		return s.runSearch(ctx, sess, filters, nil)
	})
	return respondState(c, state, err)
}

// SearchStateHandler возвращает последнее применённое состояние поиска
func (s *PagesService) SearchStateHandler(c fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	return c.JSON(searchLoader(sess, searchLoaderKey).State())
}

// CategoryHandler страница раздела: поиск с фильтром раздела
func (s *PagesService) CategoryHandler(c fiber.Ctx) error {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query string"})
	}

	sess := middleware.SessionFrom(c)
	category := LookupCategory(strings.Clone(c.Params("name")))
	filters := category.Apply(ParseSearchFilters(values))

	state, err := searchLoader(sess, categoryLoaderKey).Run(c.Context(), func(ctx context.Context) (*SearchView, error) {
		return s.runSearch(ctx, sess, filters, &category)
	})
	return respondState(c, state, err)
}

func (s *PagesService) runSearch(ctx context.Context, sess *session.Session, filters models.SearchFilters, category *Category) (*SearchView, error) {
	page, err := s.source(sess).Search(ctx, filters)
	if err != nil {
		return nil, err
	}
	return s.newSearchView(sess, filters, page, category), nil
}

func (s *PagesService) newSearchView(sess *session.Session, filters models.SearchFilters, page *catalog.Page, category *Category) *SearchView {
	pageSize := page.PageSize
	if pageSize < 1 {
		pageSize = search.PageSizeOf(filters)
	}
	current := page.Page
	if current < 1 {
		current = search.PageOf(filters)
	}

	return &SearchView{
		Filters:     filters,
		Query:       search.EncodeQuery(filters),
		Sort:        search.EncodeSort(filters.SortBy, filters.SortOrder),
		SortOptions: search.SortOptions,
		Results:     newCards(page.Results, sess.Favorites, s.images),
		Pagination:  search.NewPagination(page.Total, current, pageSize),
		Origin:      page.Origin,
		Empty:       len(page.Results) == 0,
		Category:    category,
	}
}
