package detail_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/megamart/app/detail"
	"github.com/shashiranjanraj/megamart/app/models"
	"github.com/shashiranjanraj/megamart/app/services"
)

func product(id int, price string) *models.Product {
	return &models.Product{ID: id, Title: fmt.Sprintf("Product %d", id), Price: decimal.RequireFromString(price)}
}

// found returns a view resolved on id with the given price and discount.
func found(id, price string, discount int) detail.State {
	s := detail.Reduce(detail.Initial(), detail.Navigate{ID: id})
	return detail.Reduce(s, detail.Resolved{Seq: s.Seq, ID: id, Product: product(1, price), Discount: discount})
}

func TestPricing_Example(t *testing.T) {
	p := detail.NewPricing(decimal.RequireFromString("599.00"), 10)
	assert.Equal(t, "539.10", p.Discounted.StringFixed(2))
	assert.Equal(t, "59.90", p.Savings.StringFixed(2))
	assert.Equal(t, "599.00", p.Price.StringFixed(2))
}

func TestPricing_PartsAddUpToPrice(t *testing.T) {
	cent := decimal.RequireFromString("0.01")
	for _, raw := range []string{"0", "0.01", "9.99", "55.99", "109.95", "599", "19999", "129999", "7.333"} {
		price := decimal.RequireFromString(raw)
		for d := detail.MinDiscount; d <= detail.MaxDiscount; d++ {
			p := detail.NewPricing(price, d)
			diff := p.Discounted.Add(p.Savings).Sub(price).Abs()
			assert.True(t, diff.LessThanOrEqual(cent), "price %s discount %d: %s + %s", raw, d, p.Discounted, p.Savings)
		}
	}
}

func TestReduce_NavigateStartsLoading(t *testing.T) {
	s := detail.Reduce(detail.Initial(), detail.Navigate{ID: "3"})

	assert.Equal(t, "3", s.ID)
	assert.Equal(t, uint64(1), s.Seq)
	assert.Equal(t, detail.Loading, s.Phase)
	assert.Nil(t, s.Product)
	assert.Equal(t, 1, s.Quantity)
	assert.False(t, s.Favorite)
}

func TestReduce_FirstNavigateToEmptyIDStillCounts(t *testing.T) {
	s := detail.Reduce(detail.Initial(), detail.Navigate{ID: ""})
	assert.Equal(t, uint64(1), s.Seq)
}

func TestReduce_NavigateToSameIDIsNoop(t *testing.T) {
	s := found("3", "599", 10)
	assert.Equal(t, s, detail.Reduce(s, detail.Navigate{ID: "3"}))
}

func TestReduce_NavigateKeepsQuantityAndFavorite(t *testing.T) {
	s := found("3", "599", 10)
	s = detail.Reduce(s, detail.Increment{})
	s = detail.Reduce(s, detail.ToggleFavorite{})
	s = detail.Reduce(s, detail.AddToCart{})

	s = detail.Reduce(s, detail.Navigate{ID: "4"})
	assert.Equal(t, detail.Loading, s.Phase)
	assert.Nil(t, s.Product)
	assert.Nil(t, s.Pricing)
	assert.Empty(t, s.Notice)
	assert.Equal(t, 2, s.Quantity)
	assert.True(t, s.Favorite)
}

func TestReduce_Resolved(t *testing.T) {
	s := found("3", "599.00", 10)

	assert.Equal(t, detail.Found, s.Phase)
	require.NotNil(t, s.Pricing)
	assert.Equal(t, 10, s.Pricing.Discount)
	assert.Equal(t, "539.10", s.Pricing.Discounted.StringFixed(2))
	assert.Equal(t, "59.90", s.Pricing.Savings.StringFixed(2))
}

func TestReduce_ResolvedClampsDiscount(t *testing.T) {
	assert.Equal(t, detail.MinDiscount, found("1", "10", 0).Pricing.Discount)
	assert.Equal(t, detail.MaxDiscount, found("1", "10", 90).Pricing.Discount)
}

func TestReduce_ResolvedWithoutProductIsNotFound(t *testing.T) {
	s := detail.Reduce(detail.Initial(), detail.Navigate{ID: "1"})
	s = detail.Reduce(s, detail.Resolved{Seq: s.Seq, ID: "1"})
	assert.Equal(t, detail.NotFound, s.Phase)
}

func TestReduce_Rejected(t *testing.T) {
	s := detail.Reduce(detail.Initial(), detail.Navigate{ID: "999"})

	nf := detail.Reduce(s, detail.Rejected{Seq: s.Seq, ID: "999", Err: fmt.Errorf("x: %w", services.ErrNotFound)})
	assert.Equal(t, detail.NotFound, nf.Phase)
	assert.Nil(t, nf.Product)
	assert.Equal(t, detail.NotFoundMessage, nf.Message())

	failed := detail.Reduce(s, detail.Rejected{Seq: s.Seq, ID: "999", Err: fmt.Errorf("x: %w", services.ErrUnavailable)})
	assert.Equal(t, detail.Failed, failed.Phase)
	assert.Contains(t, failed.Reason, "unavailable")
	assert.Equal(t, detail.UnavailableMessage, failed.Message())
}

func TestReduce_StaleResultsAreIgnored(t *testing.T) {
	s := detail.Reduce(detail.Initial(), detail.Navigate{ID: "1"})
	old := s.Seq
	s = detail.Reduce(s, detail.Navigate{ID: "2"})

	assert.Equal(t, s, detail.Reduce(s, detail.Resolved{Seq: old, ID: "1", Product: product(1, "5"), Discount: 10}))
	assert.Equal(t, s, detail.Reduce(s, detail.Rejected{Seq: old, ID: "1", Err: errors.New("late")}))
	// Right id, wrong sequence.
	assert.Equal(t, s, detail.Reduce(s, detail.Resolved{Seq: old, ID: "2", Product: product(2, "5"), Discount: 10}))

	s = detail.Reduce(s, detail.Resolved{Seq: s.Seq, ID: "2", Product: product(2, "5"), Discount: 10})
	assert.Equal(t, 2, s.Product.ID)

	// A second result for a settled navigation changes nothing.
	assert.Equal(t, s, detail.Reduce(s, detail.Resolved{Seq: s.Seq, ID: "2", Product: product(7, "1"), Discount: 5}))
}

func TestReduce_ActionsIgnoredUntilFound(t *testing.T) {
	loading := detail.Reduce(detail.Initial(), detail.Navigate{ID: "1"})
	notFound := detail.Reduce(loading, detail.Rejected{Seq: loading.Seq, ID: "1", Err: services.ErrNotFound})

	for _, s := range []detail.State{loading, notFound} {
		for _, a := range []detail.Action{detail.Increment{}, detail.Decrement{}, detail.SetQuantity{N: 5}, detail.AddToCart{}, detail.BuyNow{}} {
			assert.Equal(t, s, detail.Reduce(s, a), "%T in %s", a, s.Phase)
		}
	}
}

func TestReduce_DecrementFloorsAtOne(t *testing.T) {
	s := found("1", "10", 10)
	for i := 0; i < 25; i++ {
		s = detail.Reduce(s, detail.Decrement{})
		assert.Equal(t, 1, s.Quantity)
	}
}

func TestReduce_QuantityChanges(t *testing.T) {
	s := found("1", "10", 10)
	s = detail.Reduce(s, detail.Increment{})
	s = detail.Reduce(s, detail.Increment{})
	assert.Equal(t, 3, s.Quantity)
	s = detail.Reduce(s, detail.Decrement{})
	assert.Equal(t, 2, s.Quantity)
	s = detail.Reduce(s, detail.SetQuantity{N: 40})
	assert.Equal(t, 40, s.Quantity)
	s = detail.Reduce(s, detail.SetQuantity{N: -3})
	assert.Equal(t, 1, s.Quantity)
}

func TestReduce_ToggleFavoriteTwice(t *testing.T) {
	for _, s := range []detail.State{detail.Initial(), detail.Reduce(detail.Initial(), detail.Navigate{ID: "1"}), found("1", "10", 10)} {
		once := detail.Reduce(s, detail.ToggleFavorite{})
		assert.True(t, once.Favorite)
		assert.False(t, detail.Reduce(once, detail.ToggleFavorite{}).Favorite)
	}
}

func TestReduce_Notices(t *testing.T) {
	s := found("1", "10", 10)
	s = detail.Reduce(s, detail.Increment{})
	s = detail.Reduce(s, detail.Increment{})

	carted := detail.Reduce(s, detail.AddToCart{})
	assert.Equal(t, "Added 3 items to cart!", carted.Notice)
	assert.Equal(t, 3, carted.Quantity)
	assert.Equal(t, s.Product, carted.Product)

	assert.Equal(t, "Proceeding to checkout...", detail.Reduce(carted, detail.BuyNow{}).Notice)
	assert.Empty(t, detail.Reduce(carted, detail.Increment{}).Notice)
}

func TestPhase(t *testing.T) {
	assert.Equal(t, "not_found", detail.NotFound.String())
	assert.False(t, detail.Loading.Terminal())
	assert.True(t, detail.Failed.Terminal())

	b, err := detail.Found.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "found", string(b))
}

func TestModel(t *testing.T) {
	m := found("3", "599", 10).Model()

	assert.Equal(t, "3", m.ID)
	assert.Equal(t, detail.Found, m.Phase)
	assert.Empty(t, m.Message)
	require.NotNil(t, m.Pricing)
	assert.Equal(t, "599.00", m.Pricing.Price)
	assert.Equal(t, "539.10", m.Pricing.Discounted)
	assert.Equal(t, "59.90", m.Pricing.Savings)
	assert.Equal(t, 1, m.Quantity)

	loading := detail.Reduce(detail.Initial(), detail.Navigate{ID: "3"}).Model()
	assert.Nil(t, loading.Product)
	assert.Nil(t, loading.Pricing)
}
