package detail

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Pricing is the derived price block of a resolved detail view. Only Price
// comes from the product record; the rest follows from the decorative
// discount percentage.
type Pricing struct {
	Price      decimal.Decimal
	Discount   int
	Discounted decimal.Decimal
	Savings    decimal.Decimal
}

// NewPricing derives the discounted price and the savings, each rounded
// half away from zero to two decimal places.
func NewPricing(price decimal.Decimal, discount int) Pricing {
	d := decimal.NewFromInt(int64(discount))
	return Pricing{
		Price:      price,
		Discount:   discount,
		Discounted: price.Mul(hundred.Sub(d)).Div(hundred).Round(2),
		Savings:    price.Mul(d).Div(hundred).Round(2),
	}
}
