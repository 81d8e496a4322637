// Package listing builds the storefront home page view model.
package listing

import (
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/megamart/app/models"
	"github.com/shashiranjanraj/megamart/pkg/decor"
	"github.com/shashiranjanraj/megamart/pkg/ui"
)

// Decorative bounds for cards, inclusive.
const (
	MinDiscount    = 10
	MaxDiscount    = 49
	MinRatingCount = 50
	MaxRatingCount = 549
)

const (
	AddedNotice       = "Added to cart!"
	UnavailableNotice = "Products are unavailable right now. Please try again later."
)

// cardFactor is the fixed markdown applied to the price shown on cards.
var cardFactor = decimal.RequireFromString("0.8")

type Card struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	CardPrice   string `json:"card_price"`
	Discount    int    `json:"discount"`
	RatingCount int    `json:"rating_count"`
	Favorite    bool   `json:"favorite"`
}

type Category struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
}

// Categories are decorative and never filter the grid.
var Categories = []Category{
	{Name: "All Products", Variant: string(ui.VariantDefault)},
	{Name: "Electronics", Variant: string(ui.VariantOutline)},
	{Name: "Clothing", Variant: string(ui.VariantOutline)},
	{Name: "Books", Variant: string(ui.VariantOutline)},
}

type Page struct {
	Cards      []Card     `json:"cards"`
	Categories []Category `json:"categories"`
	Favorites  Favorites  `json:"-"`
	Notice     string     `json:"notice,omitempty"`
}

// Build turns products into cards. Discount and rating count are drawn from
// src on every call.
func Build(products []models.Product, fav Favorites, src decor.Source) Page {
	if fav == nil {
		fav = Favorites{}
	}
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, Card{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Image:       p.Image,
			Price:       p.Price.StringFixed(2),
			CardPrice:   p.Price.Mul(cardFactor).StringFixed(2),
			Discount:    src.Between(MinDiscount, MaxDiscount),
			RatingCount: src.Between(MinRatingCount, MaxRatingCount),
			Favorite:    fav.Has(p.ID),
		})
	}
	return Page{Cards: cards, Categories: Categories, Favorites: fav}
}

// Unavailable is the page shown when the catalog could not be loaded.
func Unavailable(fav Favorites) Page {
	if fav == nil {
		fav = Favorites{}
	}
	return Page{Cards: []Card{}, Categories: Categories, Favorites: fav, Notice: UnavailableNotice}
}

// ToggleFavorite is the fav query value after flipping id.
func (p Page) ToggleFavorite(id int) string {
	return p.Favorites.Toggle(id).String()
}
