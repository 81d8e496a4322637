package detail

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shashiranjanraj/megamart/pkg/decor"
)

// Params carry a detail view across stateless page loads: the drawn
// discount, the chosen quantity and the favorite flag.
type Params struct {
	Discount int // 0 = draw a new one
	Quantity int
	Favorite bool
}

// ParseParams reads d, qty and fav. Out of range values are dropped.
func ParseParams(q url.Values) Params {
	var p Params
	if d, err := strconv.Atoi(q.Get("d")); err == nil && d >= MinDiscount && d <= MaxDiscount {
		p.Discount = d
	}
	if n, err := strconv.Atoi(q.Get("qty")); err == nil && n > 1 {
		p.Quantity = n
	}
	p.Favorite = q.Get("fav") == "1"
	return p
}

// ParamsOf captures s so the next page load can rebuild it.
func ParamsOf(s State) Params {
	p := Params{Quantity: s.Quantity, Favorite: s.Favorite}
	if s.Pricing != nil {
		p.Discount = s.Pricing.Discount
	}
	return p
}

func (p Params) Values() url.Values {
	q := url.Values{}
	if p.Discount > 0 {
		q.Set("d", strconv.Itoa(p.Discount))
	}
	if p.Quantity > 1 {
		q.Set("qty", strconv.Itoa(p.Quantity))
	}
	if p.Favorite {
		q.Set("fav", "1")
	}
	return q
}

// Encode is the query string for p, "" when it holds only defaults.
func (p Params) Encode() string {
	return p.Values().Encode()
}

// Load runs a one-shot view for id, waits for it to settle, replays p and
// then applies actions. A params discount replaces src.
func Load(ctx context.Context, f Fetcher, src decor.Source, id string, p Params, actions ...Action) (State, error) {
	if p.Discount > 0 {
		src = decor.Fixed(p.Discount)
	}

	v := NewView(f, src)
	defer v.Close()

	v.Navigate(ctx, id)
	st, err := v.Wait(ctx)
	if err != nil {
		return st, err
	}

	if p.Quantity > 1 {
		st = v.Dispatch(SetQuantity{N: p.Quantity})
	}
	if p.Favorite {
		st = v.Dispatch(ToggleFavorite{})
	}
	for _, a := range actions {
		st = v.Dispatch(a)
	}
	return st, nil
}
