package search

import "strings"

// Направления сортировки
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortOption пункт выпадающего списка сортировки
type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SortOptions варианты сортировки, которые предлагает страница поиска
var SortOptions = []SortOption{
	{Value: "", Label: "Relevance"},
	{Value: "-id", Label: "Newest"},
	{Value: "price", Label: "Price: low to high"},
	{Value: "-price", Label: "Price: high to low"},
	{Value: "-year", Label: "Year: newest first"},
	{Value: "year", Label: "Year: oldest first"},
	{Value: "mileage", Label: "Mileage: lowest first"},
}

// EncodeSort кодирует поле и направление в ключ сортировки.
// Ведущий "-" означает убывание.
func EncodeSort(sortBy, order string) string {
	if sortBy == "" {
		return ""
	}
	if order == OrderDesc {
		return "-" + sortBy
	}
	return sortBy
}

// DecodeSort разбирает ключ сортировки обратно в поле и направление
func DecodeSort(key string) (sortBy, order string) {
	key = strings.TrimSpace(key)
	switch {
	case key == "" || key == "-":
		return "", ""
	case strings.HasPrefix(key, "-"):
		return key[1:], OrderDesc
	default:
		return key, OrderAsc
	}
}
