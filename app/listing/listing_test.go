package listing_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/megamart/app/listing"
	"github.com/shashiranjanraj/megamart/app/models"
	"github.com/shashiranjanraj/megamart/pkg/decor"
)

func catalog() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Samsung Galaxy S23 Ultra", Price: decimal.NewFromInt(129999)},
		{ID: 2, Title: "Samsung Galaxy M33", Price: decimal.NewFromInt(19999)},
	}
}

func TestBuild(t *testing.T) {
	page := listing.Build(catalog(), listing.ParseFavorites("2"), decor.NewSequence(12, 300, 48, 51))

	require.Len(t, page.Cards, 2)
	first, second := page.Cards[0], page.Cards[1]

	assert.Equal(t, "129999.00", first.Price)
	assert.Equal(t, "103999.20", first.CardPrice)
	assert.Equal(t, 12, first.Discount)
	assert.Equal(t, 300, first.RatingCount)
	assert.False(t, first.Favorite)

	assert.Equal(t, "15999.20", second.CardPrice)
	assert.Equal(t, 48, second.Discount)
	assert.Equal(t, 51, second.RatingCount)
	assert.True(t, second.Favorite)

	assert.Equal(t, "All Products", page.Categories[0].Name)
	assert.Equal(t, "default", page.Categories[0].Variant)
	assert.Equal(t, "outline", page.Categories[3].Variant)
}

func TestBuild_DecorStaysInBounds(t *testing.T) {
	src := decor.New(1)
	for i := 0; i < 200; i++ {
		for _, c := range listing.Build(catalog(), nil, src).Cards {
			assert.GreaterOrEqual(t, c.Discount, listing.MinDiscount)
			assert.LessOrEqual(t, c.Discount, listing.MaxDiscount)
			assert.GreaterOrEqual(t, c.RatingCount, listing.MinRatingCount)
			assert.LessOrEqual(t, c.RatingCount, listing.MaxRatingCount)
		}
	}
}

func TestUnavailable(t *testing.T) {
	page := listing.Unavailable(nil)
	assert.Empty(t, page.Cards)
	assert.Equal(t, listing.UnavailableNotice, page.Notice)

	raw, err := json.Marshal(page)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"cards":[]`)
}

func TestFavorites(t *testing.T) {
	f := listing.ParseFavorites(" 3,1,x,,-2,3 ")
	assert.Equal(t, []int{1, 3}, f.IDs())
	assert.Equal(t, "1,3", f.String())

	toggled := f.Toggle(2)
	assert.Equal(t, "1,2,3", toggled.String())
	assert.Equal(t, "1,3", f.String(), "toggle must not mutate the receiver")
	assert.Equal(t, "1", toggled.Toggle(2).Toggle(3).String())

	assert.Empty(t, listing.ParseFavorites("").String())
}

func TestPage_ToggleFavorite(t *testing.T) {
	page := listing.Build(catalog(), listing.ParseFavorites("1"), decor.Fixed(20))
	assert.Equal(t, "", page.ToggleFavorite(1))
	assert.Equal(t, "1,2", page.ToggleFavorite(2))
}
