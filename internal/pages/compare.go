package pages

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/flippy-motors/internal/middleware"
	"github.com/rajivgeraev/flippy-motors/internal/models"
)

// CompareView данные страницы сравнения
type CompareView struct {
	IDs      []string     `json:"ids"`
	Vehicles []Card       `json:"vehicles"`
	Rows     []CompareRow `json:"rows"`
	Empty    bool         `json:"empty"`
}

// CompareRow строка таблицы сравнения, по значению на автомобиль
type CompareRow struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// compareFields строки таблицы сравнения
var compareFields = []struct {
	label string
	value func(v models.Vehicle) string
}{
	{"Price", func(v models.Vehicle) string { return FormatPrice(v.Price) }},
	{"Brand", func(v models.Vehicle) string { return str(v.Brand) }},
	{"Model", func(v models.Vehicle) string { return str(v.Model) }},
	{"Year", func(v models.Vehicle) string { return intString(v.Year) }},
	{"Mileage", func(v models.Vehicle) string { return FormatMileage(v.Mileage) }},
	{"Fuel type", func(v models.Vehicle) string { return str(v.FuelType) }},
	{"Transmission", func(v models.Vehicle) string { return str(v.Transmission) }},
	{"Body type", func(v models.Vehicle) string { return str(v.BodyType) }},
	{"Seats", func(v models.Vehicle) string { return intString(v.Seats) }},
	{"Color", func(v models.Vehicle) string { return str(v.Color) }},
	{"Origin", func(v models.Vehicle) string { return str(v.Origin) }},
	{"Location", func(v models.Vehicle) string { return str(v.Location) }},
}

// ParseCompareIDs разбирает список ids=1,2,3 без пустых значений и повторов
func ParseCompareIDs(raw string) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// CompareHandler сравнивает автомобили из параметра ids
func (s *PagesService) CompareHandler(c fiber.Ctx) error {
	ids := ParseCompareIDs(c.Query("ids"))
	if len(ids) == 0 {
		return c.JSON(CompareView{IDs: ids, Vehicles: []Card{}, Rows: []CompareRow{}, Empty: true})
	}

	sess := middleware.SessionFrom(c)
	ctx := c.Context()

	vehicles, err := s.vehicles.Bound(sess.Auth).Compare(ctx, ids)
	if err != nil {
		return err
	}

	// Первый автомобиль считается основным, остальные идут в контекст
	s.track(ctx, sess, models.FeedbackRequest{
		VehicleID: ids[0],
		Action:    models.ActionCompare,
		Context:   map[string]any{"compared_with": ids[1:]},
	})

	return c.JSON(CompareView{
		IDs:      ids,
		Vehicles: newCards(vehicles, sess.Favorites, s.images),
		Rows:     compareRows(vehicles),
		Empty:    len(vehicles) == 0,
	})
}

func compareRows(vehicles []models.Vehicle) []CompareRow {
	rows := make([]CompareRow, 0, len(compareFields))
	for _, field := range compareFields {
		row := CompareRow{Label: field.label, Values: make([]string, 0, len(vehicles))}
		for _, v := range vehicles {
			value := field.value(v)
			if value == "" {
				value = "-"
			}
			row.Values = append(row.Values, value)
		}
		rows = append(rows, row)
	}
	return rows
}

func intString(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
