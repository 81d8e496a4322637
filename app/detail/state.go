// Package detail holds the product detail view: a pure reducer over an
// explicit State, and a View that runs the fetch lifecycle around it.
//
//	v := detail.NewView(products, decor.New(0))
//	defer v.Close()
//
//	v.Navigate(ctx, "3")
//	st, err := v.Wait(ctx)   // Found, NotFound or Failed
//	st = v.Dispatch(detail.Increment{})
package detail

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/megamart/app/models"
	"github.com/shashiranjanraj/megamart/app/services"
)

// Decorative discount bounds for the detail page, inclusive.
const (
	MinDiscount = 5
	MaxDiscount = 24
)

// Phase is where a detail view is in its fetch lifecycle.
type Phase int

const (
	Loading Phase = iota
	Found
	NotFound
	Failed
)

var phaseNames = [...]string{"loading", "found", "not_found", "failed"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Terminal reports whether the phase only changes on navigation.
func (p Phase) Terminal() bool { return p != Loading }

// State is one snapshot of a detail view. Seq counts navigations and tags
// every fetch so late results for an older identifier are dropped.
type State struct {
	ID       string
	Seq      uint64
	Phase    Phase
	Product  *models.Product
	Reason   string
	Pricing  *Pricing
	Quantity int
	Favorite bool
	Notice   string
}

// Initial is the state of a view that has not been navigated yet.
func Initial() State {
	return State{Phase: Loading, Quantity: 1}
}

// ── Actions ─────────────────────────────────────────────

// Action is an input to Reduce. Only this package defines actions.
type Action interface{ action() }

type (
	// Navigate switches the view to ID. Re-navigating to the shown ID is a no-op.
	Navigate struct{ ID string }

	// Resolved delivers a fetched product together with the discount drawn for it.
	Resolved struct {
		Seq      uint64
		ID       string
		Product  *models.Product
		Discount int
	}

	// Rejected delivers the error of a failed fetch.
	Rejected struct {
		Seq uint64
		ID  string
		Err error
	}

	// User actions. Only ToggleFavorite applies before the product is found.
	Increment      struct{}
	Decrement      struct{}
	SetQuantity    struct{ N int }
	ToggleFavorite struct{}
	AddToCart      struct{}
	BuyNow         struct{}
)

func (Navigate) action()       {}
func (Resolved) action()       {}
func (Rejected) action()       {}
func (Increment) action()      {}
func (Decrement) action()      {}
func (SetQuantity) action()    {}
func (ToggleFavorite) action() {}
func (AddToCart) action()      {}
func (BuyNow) action()         {}

// ── Reducer ─────────────────────────────────────────────

// Reduce applies a to s. Ignored actions return s unchanged; every accepted
// action replaces the previous notice.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Navigate:
		if s.Seq > 0 && a.ID == s.ID {
			return s
		}
		return State{
			ID:       a.ID,
			Seq:      s.Seq + 1,
			Phase:    Loading,
			Quantity: max(s.Quantity, 1),
			Favorite: s.Favorite,
		}

	case Resolved:
		if !s.current(a.Seq, a.ID) {
			return s
		}
		if a.Product == nil {
			return reject(s, fmt.Errorf("empty result: %w", services.ErrNotFound))
		}
		pricing := NewPricing(a.Product.Price, clamp(a.Discount, MinDiscount, MaxDiscount))
		s.Phase, s.Product, s.Pricing, s.Reason, s.Notice = Found, a.Product, &pricing, "", ""
		return s

	case Rejected:
		if !s.current(a.Seq, a.ID) {
			return s
		}
		return reject(s, a.Err)

	case ToggleFavorite:
		s.Favorite = !s.Favorite
		s.Notice = ""
		return s
	}

	// Everything below acts on a resolved product only.
	if s.Phase != Found {
		return s
	}

	switch a := a.(type) {
	case Increment:
		s.Quantity++
		s.Notice = ""
	case Decrement:
		s.Quantity = max(s.Quantity-1, 1)
		s.Notice = ""
	case SetQuantity:
		s.Quantity = max(a.N, 1)
		s.Notice = ""
	case AddToCart:
		s.Notice = fmt.Sprintf("Added %d items to cart!", s.Quantity)
	case BuyNow:
		s.Notice = "Proceeding to checkout..."
	}
	return s
}

func (s State) current(seq uint64, id string) bool {
	return s.Phase == Loading && seq == s.Seq && id == s.ID
}

func reject(s State, err error) State {
	s.Product, s.Pricing, s.Notice = nil, nil, ""
	if err == nil || errors.Is(err, services.ErrNotFound) {
		s.Phase, s.Reason = NotFound, ""
		return s
	}
	s.Phase, s.Reason = Failed, err.Error()
	return s
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
