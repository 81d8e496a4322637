// Package views embeds the storefront templates and the data each page
// expects.
package views

import (
	"embed"
	"html/template"
	"net/url"

	"github.com/shashiranjanraj/megamart/app/detail"
	"github.com/shashiranjanraj/megamart/app/layout"
	"github.com/shashiranjanraj/megamart/app/listing"
	"github.com/shashiranjanraj/megamart/pkg/render"
	"github.com/shashiranjanraj/megamart/pkg/ui"
)

//go:embed layout/*.html pages/*.html
var FS embed.FS

// Page is what every template receives.
type Page struct {
	Title    string
	Header   layout.Header
	MenuHref string
	Body     any
}

// NewPage builds the chrome for a request to path with query q.
func NewPage(title, path string, q url.Values, body any) Page {
	h := layout.NewHeader(q)
	return Page{Title: title, Header: h, MenuHref: h.MenuHref(path, q), Body: body}
}

type Home struct {
	listing.Page
	CartAction string
}

// FavHref links the home page with id's favorite flipped.
func (h Home) FavHref(id int) string {
	if fav := h.ToggleFavorite(id); fav != "" {
		return "/?" + url.Values{"fav": {fav}}.Encode()
	}
	return "/"
}

type Product struct {
	detail.Model
	Path       string
	Hidden     url.Values // view params replayed by the forms
	IncHref    string
	DecHref    string
	FavHref    string
	CartAction string
	BuyAction  string
}

// Reviews is the static review count shown under the title.
const Reviews = 128

var funcs = template.FuncMap{
	"button":  ui.Button,
	"badge":   ui.Badge,
	"card":    ui.Card,
	"reviews": func() int { return Reviews },
}

// New parses the embedded templates.
func New() (*render.Renderer, error) {
	return render.New(FS, funcs)
}
