package pages

import (
	"strings"
	"testing"

	"github.com/rajivgeraev/flippy-motors/internal/models"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
		want  string
	}{
		{"nil", nil, PriceOnRequest},
		{"zero", floatPtr(0), PriceOnRequest},
		{"billions", floatPtr(1250000000), "1.250.000.000 ₫"},
		{"rounded", floatPtr(999.6), "1.000 ₫"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.price); got != tt.want {
				t.Errorf("FormatPrice = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCard(t *testing.T) {
	year := 2022
	v := models.Vehicle{
		ID:       9,
		Brand:    strPtr("VinFast"),
		Model:    strPtr("VF8"),
		Year:     &year,
		Mileage:  floatPtr(12000),
		FuelType: strPtr("Điện"),
	}
	card := newCard(v, nil, nil)

	if card.Title != "VinFast VF8" {
		t.Errorf("title = %q", card.Title)
	}
	if card.Price != PriceOnRequest {
		t.Errorf("price = %q", card.Price)
	}
	if card.Link != "/vehicle/9" {
		t.Errorf("link = %q", card.Link)
	}
	if !strings.HasPrefix(card.Subtitle, "2022 · 12.000 km") {
		t.Errorf("subtitle = %q", card.Subtitle)
	}
}

func TestCategoryApply(t *testing.T) {
	suv := LookupCategory("SUV")
	if got := suv.Apply(models.SearchFilters{}); got.BodyType != "SUV" {
		t.Errorf("body_type = %q", got.BodyType)
	}
	if got := suv.Apply(models.SearchFilters{BodyType: "Sedan"}); got.BodyType != "Sedan" {
		t.Errorf("url filter overridden: %q", got.BodyType)
	}
	unknown := LookupCategory("boats")
	if got := unknown.Apply(models.SearchFilters{}); got.BodyType != "" || got.FuelType != "" {
		t.Errorf("unknown category applied filters: %+v", got)
	}
}

func TestParseCompareIDs(t *testing.T) {
	got := ParseCompareIDs(" 3, 1,,3 ,7")
	want := []string{"3", "1", "7"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ParseCompareIDs = %v, want %v", got, want)
	}
	if got := ParseCompareIDs(""); len(got) != 0 {
		t.Errorf("empty = %v", got)
	}
}

func TestParseSearchFiltersSortParam(t *testing.T) {
	f := ParseSearchFilters(map[string][]string{"sort": {"-year"}, "sort_by": {"price"}})
	if f.SortBy != "year" || f.SortOrder != "desc" {
		t.Errorf("sort = %q %q", f.SortBy, f.SortOrder)
	}
	if f.PageSize == nil || *f.PageSize != SearchPageSize {
		t.Errorf("page_size = %v", f.PageSize)
	}
}
