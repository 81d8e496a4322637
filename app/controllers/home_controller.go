package controllers

import (
	"net/http"
	"net/url"

	"github.com/shashiranjanraj/megamart/app/listing"
	"github.com/shashiranjanraj/megamart/app/views"
	"github.com/shashiranjanraj/megamart/pkg/logger"
)

type HomeController struct {
	deps Deps
}

func NewHomeController(d Deps) *HomeController {
	return &HomeController{deps: d}
}

// Index renders the product grid.
func (c *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, listing.ParseFavorites(r.URL.Query().Get("fav")), "")
}

// AddToCart answers a card's Add to Cart with the grid and a notice.
func (c *HomeController) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	c.render(w, r, listing.ParseFavorites(r.PostForm.Get("fav")), listing.AddedNotice)
}

func (c *HomeController) render(w http.ResponseWriter, r *http.Request, fav listing.Favorites, notice string) {
	page, status := buildListing(r, c.deps, fav)
	if status == http.StatusOK && notice != "" {
		page.Notice = notice
	}

	q := url.Values{}
	if len(fav) > 0 {
		q.Set("fav", fav.String())
	}
	if r.URL.Query().Get("menu") == "open" {
		q.Set("menu", "open")
	}

	body := views.Home{Page: page, CartAction: "/cart"}
	c.deps.Views.HTML(w, r, status, "home", views.NewPage("", "/", q, body))
}

// buildListing loads the catalog into a page and queues cache warm-ups.
func buildListing(r *http.Request, d Deps, fav listing.Favorites) (listing.Page, int) {
	products, err := d.Catalog.Products(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Warn("catalog unavailable", "error", err)
		return listing.Unavailable(fav), http.StatusServiceUnavailable
	}

	page := listing.Build(products, fav, d.Decor)
	if n := d.Prefetch.Prefetch(products); n > 0 {
		logger.WithCtx(r.Context()).Debug("prefetch queued", "products", n)
	}
	return page, http.StatusOK
}
