package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/megamart/pkg/ui"
)

func TestButton(t *testing.T) {
	assert.Equal(t, "btn btn-primary", ui.Button("", ""))
	assert.Equal(t, "btn btn-outline btn-sm", ui.Button("outline", "sm"))
	assert.Equal(t, "btn btn-secondary w-full", ui.Button("secondary", "default", "w-full"))
	assert.Equal(t, "btn btn-primary", ui.Button("ghost", "xl"))
}

func TestBadgeAndCard(t *testing.T) {
	assert.Equal(t, "badge badge-outline", ui.Badge("OUTLINE"))
	assert.Equal(t, "badge badge-primary off", ui.Badge("", " off "))
	assert.Equal(t, "card", ui.Card())
	assert.Equal(t, "card card-hover", ui.Card("card-hover", ""))
}

func TestParse(t *testing.T) {
	assert.Equal(t, ui.VariantSecondary, ui.ParseVariant("secondary"))
	assert.Equal(t, ui.VariantDefault, ui.ParseVariant("nonsense"))
	assert.Equal(t, ui.SizeSmall, ui.ParseSize("SM"))
	assert.Equal(t, ui.SizeDefault, ui.ParseSize(""))
}
