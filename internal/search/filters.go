// Package search содержит правила кодирования фильтров поиска в URL,
// соглашение о сортировке и расчёт пагинации.
package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rajivgeraev/flippy-motors/internal/models"
)

// DefaultPageSize размер страницы поиска по умолчанию
const DefaultPageSize = 20

// MaxPageSize верхняя граница, которую принимает бэкенд
const MaxPageSize = 100

// Ключ свободного текста в адресной строке. Бэкенд ожидает "query".
const (
	urlQueryKey     = "q"
	backendQueryKey = "query"
)

type param struct {
	key string
	get func(f *models.SearchFilters) string
	set func(f *models.SearchFilters, v string)
}

// params перечисляет распознаваемые ключи в порядке вывода
var params = []param{
	{urlQueryKey, func(f *models.SearchFilters) string { return f.Query }, func(f *models.SearchFilters, v string) { f.Query = v }},
	{"brand", func(f *models.SearchFilters) string { return f.Brand }, func(f *models.SearchFilters, v string) { f.Brand = v }},
	{"model", func(f *models.SearchFilters) string { return f.Model }, func(f *models.SearchFilters, v string) { f.Model = v }},
	{"year_min", func(f *models.SearchFilters) string { return formatInt(f.YearMin) }, func(f *models.SearchFilters, v string) { f.YearMin = parseInt(v) }},
	{"year_max", func(f *models.SearchFilters) string { return formatInt(f.YearMax) }, func(f *models.SearchFilters, v string) { f.YearMax = parseInt(v) }},
	{"price_min", func(f *models.SearchFilters) string { return formatInt64(f.PriceMin) }, func(f *models.SearchFilters, v string) { f.PriceMin = parseInt64(v) }},
	{"price_max", func(f *models.SearchFilters) string { return formatInt64(f.PriceMax) }, func(f *models.SearchFilters, v string) { f.PriceMax = parseInt64(v) }},
	{"mileage_max", func(f *models.SearchFilters) string { return formatInt(f.MileageMax) }, func(f *models.SearchFilters, v string) { f.MileageMax = parseInt(v) }},
	{"fuel_type", func(f *models.SearchFilters) string { return f.FuelType }, func(f *models.SearchFilters, v string) { f.FuelType = v }},
	{"transmission", func(f *models.SearchFilters) string { return f.Transmission }, func(f *models.SearchFilters, v string) { f.Transmission = v }},
	{"body_type", func(f *models.SearchFilters) string { return f.BodyType }, func(f *models.SearchFilters, v string) { f.BodyType = v }},
	{"location", func(f *models.SearchFilters) string { return f.Location }, func(f *models.SearchFilters, v string) { f.Location = v }},
	{"sort_by", func(f *models.SearchFilters) string { return f.SortBy }, func(f *models.SearchFilters, v string) { f.SortBy = v }},
	{"sort_order", func(f *models.SearchFilters) string { return f.SortOrder }, func(f *models.SearchFilters, v string) {
		if v == OrderAsc || v == OrderDesc {
			f.SortOrder = v
		}
	}},
	{"page", func(f *models.SearchFilters) string { return formatInt(f.Page) }, func(f *models.SearchFilters, v string) { f.Page = parseInt(v) }},
	{"page_size", func(f *models.SearchFilters) string { return formatInt(f.PageSize) }, func(f *models.SearchFilters, v string) { f.PageSize = parseInt(v) }},
}

// ParseQuery разбирает параметры адресной строки в фильтры.
// Нераспознанные ключи и некорректные числа игнорируются.
func ParseQuery(values url.Values) models.SearchFilters {
	var f models.SearchFilters
	for _, p := range params {
		v := strings.TrimSpace(values.Get(p.key))
		if v == "" && p.key == urlQueryKey {
			v = strings.TrimSpace(values.Get(backendQueryKey))
		}
		if v == "" {
			continue
		}
		p.set(&f, v)
	}
	return f
}

// EncodeQuery кодирует фильтры в строку запроса страницы.
// Ключи выводятся в фиксированном порядке, пустые значения пропускаются.
func EncodeQuery(f models.SearchFilters) string {
	var sb strings.Builder
	for _, p := range params {
		v := p.get(&f)
		if v == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.key)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(v))
	}
	return sb.String()
}

// BackendParams возвращает параметры запроса GET /search
func BackendParams(f models.SearchFilters) map[string]string {
	out := make(map[string]string)
	for _, p := range params {
		v := p.get(&f)
		if v == "" {
			continue
		}
		key := p.key
		if key == urlQueryKey {
			key = backendQueryKey
		}
		out[key] = v
	}
	return out
}

// WithPage возвращает копию фильтров с другим номером страницы
func WithPage(f models.SearchFilters, page int) models.SearchFilters {
	f.Page = &page
	return f
}

// WithPageSize возвращает копию фильтров с заданным размером страницы
func WithPageSize(f models.SearchFilters, size int) models.SearchFilters {
	f.PageSize = &size
	return f
}

// PageOf возвращает номер страницы из фильтров, по умолчанию 1
func PageOf(f models.SearchFilters) int {
	if f.Page == nil || *f.Page < 1 {
		return 1
	}
	return *f.Page
}

// PageSizeOf возвращает размер страницы из фильтров в допустимых пределах
func PageSizeOf(f models.SearchFilters) int {
	if f.PageSize == nil || *f.PageSize < 1 {
		return DefaultPageSize
	}
	if *f.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return *f.PageSize
}

func parseInt(v string) *int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func parseInt64(v string) *int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
