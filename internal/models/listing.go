package models

import "fmt"

// Vehicle представляет объявление о продаже автомобиля.
// Все поля, кроме ID, могут отсутствовать в ответе бэкенда.
type Vehicle struct {
	ID           int64    `json:"id"`
	Title        *string  `json:"title"`
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	Price        *float64 `json:"price"`
	Mileage      *float64 `json:"mileage"`
	FuelType     *string  `json:"fuel_type"`
	Transmission *string  `json:"transmission"`
	BodyType     *string  `json:"body_type"`
	Color        *string  `json:"color"`
	Seats        *int     `json:"seats"`
	Origin       *string  `json:"origin"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"image_url"`
	SellerName   *string  `json:"seller_name"`
	SellerPhone  *string  `json:"seller_phone"`
	Location     *string  `json:"location"`
	URL          *string  `json:"url"`
	PostedDate   *string  `json:"posted_date"`
}

// IDString возвращает ID в том виде, в котором он хранится в избранном
func (v Vehicle) IDString() string {
	return fmt.Sprintf("%d", v.ID)
}

// SearchFilters описывает параметры поиска. Пустые поля не передаются.
type SearchFilters struct {
	Query        string `json:"query,omitempty"`
	Brand        string `json:"brand,omitempty"`
	Model        string `json:"model,omitempty"`
	YearMin      *int   `json:"year_min,omitempty"`
	YearMax      *int   `json:"year_max,omitempty"`
	PriceMin     *int64 `json:"price_min,omitempty"`
	PriceMax     *int64 `json:"price_max,omitempty"`
	MileageMax   *int   `json:"mileage_max,omitempty"`
	FuelType     string `json:"fuel_type,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	BodyType     string `json:"body_type,omitempty"`
	Location     string `json:"location,omitempty"`
	SortBy       string `json:"sort_by,omitempty"`
	SortOrder    string `json:"sort_order,omitempty"`
	Page         *int   `json:"page,omitempty"`
	PageSize     *int   `json:"page_size,omitempty"`
}

// SearchResponse представляет страницу результатов поиска
type SearchResponse struct {
	Results    []Vehicle `json:"results"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// Validate проверяет инварианты страницы результатов
func (r SearchResponse) Validate() error {
	if r.PageSize > 0 && len(r.Results) > r.PageSize {
		return fmt.Errorf("результатов %d больше размера страницы %d", len(r.Results), r.PageSize)
	}
	if r.Total < len(r.Results) {
		return fmt.Errorf("total %d меньше числа результатов %d", r.Total, len(r.Results))
	}
	return nil
}

// Recommendation представляет рекомендованный автомобиль с оценкой
type Recommendation struct {
	Vehicle Vehicle `json:"vehicle"`
	Score   float64 `json:"score"`
	Reason  string  `json:"reason,omitempty"`
}

// CompareRequest тело запроса сравнения
type CompareRequest struct {
	VehicleIDs []string `json:"vehicle_ids"`
}
