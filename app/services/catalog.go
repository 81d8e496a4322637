package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/megamart/app/models"
	"github.com/shashiranjanraj/megamart/config"
)

// Catalog lists the products shown on the listing page.
type Catalog interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// StaticCatalog is the built-in three-item catalog.
type StaticCatalog struct{}

const placeholderImage = "https://via.placeholder.com/200"

var staticProducts = []models.Product{
	{
		ID:          1,
		Title:       "Samsung Galaxy S23 Ultra",
		Price:       decimal.NewFromInt(129999),
		Description: "200MP camera, Snapdragon 8 Gen 2",
		Category:    "electronics",
		Image:       placeholderImage,
	},
	{
		ID:          2,
		Title:       "Samsung Galaxy M33",
		Price:       decimal.NewFromInt(19999),
		Description: "6000mAh battery, 5G support",
		Category:    "electronics",
		Image:       placeholderImage,
	},
	{
		ID:          3,
		Title:       "Apple iPhone 14",
		Price:       decimal.NewFromInt(79999),
		Description: "A15 Bionic, iOS ecosystem",
		Category:    "electronics",
		Image:       placeholderImage,
	},
}

func (StaticCatalog) Products(context.Context) ([]models.Product, error) {
	return append([]models.Product(nil), staticProducts...), nil
}

// NewCatalog picks the listing source from CATALOG_SOURCE.
func NewCatalog(products *ProductService) Catalog {
	if strings.EqualFold(config.CatalogSource(), "static") {
		return StaticCatalog{}
	}
	return products
}
