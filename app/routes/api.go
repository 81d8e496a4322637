package routes

import (
	"github.com/shashiranjanraj/megamart/app/controllers"
	"github.com/shashiranjanraj/megamart/pkg/middleware"
	"github.com/shashiranjanraj/megamart/pkg/router"
)

// RegisterAPI mounts the JSON and GraphQL surfaces.
func RegisterAPI(r *router.Router, c *controllers.Controllers) {
	cors := middleware.CORS(middleware.DefaultCORSOptions())

	api := r.Group("/api", cors)
	api.Get("/products", "api.products.index", c.API.Products)
	api.Get("/products/{id}", "api.products.show", c.API.Product)

	r.Post("/graphql", "graphql", c.GraphQL, cors)
}

// Register mounts every application route.
func Register(r *router.Router, c *controllers.Controllers) {
	RegisterWeb(r, c)
	RegisterAPI(r, c)
}
