package pages

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/services/cloudinary"
	"github.com/rajivgeraev/flippy-motors/internal/store"
)

// PriceOnRequest подпись для объявлений без цены
const PriceOnRequest = "Contact for price"

// Цены на площадке в донгах, разряды по вьетнамским правилам
var viPrinter = message.NewPrinter(language.Vietnamese)

// FormatPrice форматирует цену в VND
func FormatPrice(price *float64) string {
	if price == nil || *price <= 0 {
		return PriceOnRequest
	}
	return viPrinter.Sprintf("%d ₫", int64(math.Round(*price)))
}

// FormatMileage форматирует пробег
func FormatMileage(mileage *float64) string {
	if mileage == nil {
		return ""
	}
	return viPrinter.Sprintf("%d km", int64(math.Round(*mileage)))
}

// Card карточка автомобиля в списках
type Card struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Price      string `json:"price"`
	ImageURL   string `json:"image_url,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Location   string `json:"location,omitempty"`
	Link       string `json:"link"`
	IsFavorite bool   `json:"is_favorite"`
}

// RecommendationCard карточка рекомендации
type RecommendationCard struct {
	Card
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

func newCard(v models.Vehicle, favorites *store.FavoriteStore, images *cloudinary.CloudinaryService) Card {
	card := Card{
		ID:       v.ID,
		Title:    str(v.Title),
		Price:    FormatPrice(v.Price),
		ImageURL: str(v.ImageURL),
		Location: str(v.Location),
		Link:     "/vehicle/" + v.IDString(),
	}
	if card.Title == "" {
		card.Title = strings.TrimSpace(str(v.Brand) + " " + str(v.Model))
	}
	if card.ImageURL != "" {
		card.Thumbnail = images.Thumbnail(card.ImageURL)
	}
	if favorites != nil {
		card.IsFavorite = favorites.IsFavorite(v.IDString())
	}

	var parts []string
	if v.Year != nil {
		parts = append(parts, strconv.Itoa(*v.Year))
	}
	if m := FormatMileage(v.Mileage); m != "" {
		parts = append(parts, m)
	}
	for _, p := range []*string{v.FuelType, v.Transmission} {
		if s := str(p); s != "" {
			parts = append(parts, s)
		}
	}
	card.Subtitle = strings.Join(parts, " · ")
	return card
}

func newCards(vs []models.Vehicle, favorites *store.FavoriteStore, images *cloudinary.CloudinaryService) []Card {
	cards := make([]Card, 0, len(vs))
	for _, v := range vs {
		cards = append(cards, newCard(v, favorites, images))
	}
	return cards
}

func newRecommendationCards(recos []models.Recommendation, favorites *store.FavoriteStore, images *cloudinary.CloudinaryService) []RecommendationCard {
	cards := make([]RecommendationCard, 0, len(recos))
	for _, r := range recos {
		cards = append(cards, RecommendationCard{
			Card:   newCard(r.Vehicle, favorites, images),
			Score:  r.Score,
			Reason: r.Reason,
		})
	}
	return cards
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
