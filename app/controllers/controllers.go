package controllers

import (
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/megamart/app/detail"
	"github.com/shashiranjanraj/megamart/app/services"
	"github.com/shashiranjanraj/megamart/pkg/decor"
	"github.com/shashiranjanraj/megamart/pkg/render"
)

// Deps are the collaborators every controller draws from.
type Deps struct {
	Products detail.Fetcher
	Catalog  services.Catalog
	Prefetch *services.Prefetcher // nil disables warm-ups
	Decor    decor.Source
	Views    *render.Renderer
}

// Controllers groups the handlers mounted by app/routes.
type Controllers struct {
	Home    *HomeController
	Product *ProductController
	API     *APIController
	Live    *LiveController
	GraphQL http.HandlerFunc
}

func New(d Deps) (*Controllers, error) {
	if d.Decor == nil {
		d.Decor = decor.New(0)
	}
	if d.Views == nil {
		return nil, fmt.Errorf("controllers: views are required")
	}

	gql, err := NewGraphQLHandler(d)
	if err != nil {
		return nil, err
	}

	return &Controllers{
		Home:    NewHomeController(d),
		Product: NewProductController(d),
		API:     NewAPIController(d),
		Live:    NewLiveController(d),
		GraphQL: gql,
	}, nil
}

// statusOf maps a settled detail phase to the page status.
func statusOf(st detail.State) int {
	switch st.Phase {
	case detail.Found:
		return http.StatusOK
	case detail.NotFound:
		return http.StatusNotFound
	case detail.Failed:
		return http.StatusBadGateway
	default:
		return http.StatusGatewayTimeout
	}
}
