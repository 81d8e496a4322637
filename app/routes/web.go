package routes

import (
	"github.com/shashiranjanraj/megamart/app/controllers"
	"github.com/shashiranjanraj/megamart/pkg/router"
)

// RegisterWeb mounts the storefront pages and the live detail view.
func RegisterWeb(r *router.Router, c *controllers.Controllers) {
	r.Get("/", "home", c.Home.Index)
	r.Get("/Mega-Mart", "home.alias", c.Home.Index)
	r.Post("/cart", "home.cart", c.Home.AddToCart)

	product := r.Group("/product/{id}")
	product.Get("/", "product.show", c.Product.Show)
	product.Post("/cart", "product.cart", c.Product.AddToCart)
	product.Post("/buy", "product.buy", c.Product.BuyNow)
	product.Get("/events", "product.events", c.Live.Events)
	product.Get("/live", "product.live", c.Live.Socket)
}
