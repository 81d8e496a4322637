package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the catalog record served by the product API. Price is the
// authoritative unit price; nothing in the storefront computes it.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Image       string          `json:"image"`
	Rating      *Rating         `json:"rating,omitempty"`
}

// Rating is the upstream review summary. The storefront shows decorative
// counts instead, but keeps the field so cached records round-trip.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Validate reports the first reason p is not a usable product record.
func (p Product) Validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("product: invalid id %d", p.ID)
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("product %d: missing title", p.ID)
	case p.Price.IsNegative():
		return fmt.Errorf("product %d: negative price %s", p.ID, p.Price)
	}
	return nil
}
