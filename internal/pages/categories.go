package pages

import (
	"strings"

	"github.com/rajivgeraev/flippy-motors/internal/models"
)

// Category раздел каталога с фиксированным фильтром
type Category struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BodyType    string `json:"body_type,omitempty"`
	FuelType    string `json:"fuel_type,omitempty"`
}

// Categories известные разделы. Значения фильтров совпадают с данными бэкенда.
var Categories = map[string]Category{
	"suv": {
		Slug:        "suv",
		Title:       "SUVs",
		Description: "Find the perfect SUV for your family, from compact crossovers to full-size SUVs.",
		BodyType:    "SUV",
	},
	"sedan": {
		Slug:        "sedan",
		Title:       "Sedans",
		Description: "Reliable and comfortable sedans for daily commuting and family trips.",
		BodyType:    "Sedan",
	},
	"electric": {
		Slug:        "electric",
		Title:       "Electric Vehicles",
		Description: "Zero emissions, lower operating costs and cutting-edge technology.",
		FuelType:    "Điện",
	},
	"hatchback": {
		Slug:        "hatchback",
		Title:       "Hatchbacks",
		Description: "Compact and efficient hatchbacks for city driving and easy parking.",
		BodyType:    "Hatchback",
	},
	"pickup": {
		Slug:        "pickup",
		Title:       "Pickup Trucks",
		Description: "Powerful and versatile pickup trucks for work and adventure.",
		BodyType:    "Bán tải",
	},
	"mpv": {
		Slug:        "mpv",
		Title:       "MPVs",
		Description: "Family-friendly MPVs with spacious interiors and flexible seating.",
		BodyType:    "MPV",
	},
}

// LookupCategory возвращает раздел по slug. Неизвестный slug даёт раздел без фильтра.
func LookupCategory(slug string) Category {
	if c, ok := Categories[strings.ToLower(slug)]; ok {
		return c
	}
	return Category{Slug: slug, Title: slug}
}

// Apply подставляет фильтр раздела. Значения из адресной строки важнее.
func (c Category) Apply(f models.SearchFilters) models.SearchFilters {
	if f.BodyType == "" {
		f.BodyType = c.BodyType
	}
	if f.FuelType == "" {
		f.FuelType = c.FuelType
	}
	return f
}

// categoryOrder порядок разделов в навигации
var categoryOrder = []string{"electric", "suv", "sedan", "pickup", "hatchback", "mpv"}

func categoryList() []Category {
	list := make([]Category, 0, len(categoryOrder))
	for _, slug := range categoryOrder {
		list = append(list, Categories[slug])
	}
	return list
}
