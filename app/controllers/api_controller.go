package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/megamart/app/detail"
	"github.com/shashiranjanraj/megamart/app/listing"
	"github.com/shashiranjanraj/megamart/pkg/logger"
	"github.com/shashiranjanraj/megamart/pkg/response"
)

// APIController serves the listing and detail view models as JSON.
type APIController struct {
	deps Deps
}

func NewAPIController(d Deps) *APIController {
	return &APIController{deps: d}
}

// Products returns the listing page; ?fav= marks favorites.
func (c *APIController) Products(w http.ResponseWriter, r *http.Request) {
	page, status := buildListing(r, c.deps, listing.ParseFavorites(r.URL.Query().Get("fav")))
	if status != http.StatusOK {
		response.JSON(w, status, page.Notice, page)
		return
	}
	response.Success(w, page)
}

// Product returns the settled detail view model. ?d=, ?qty= and ?fav=1
// replay a view the same way the HTML page does.
func (c *APIController) Product(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	st, err := detail.Load(r.Context(), c.deps.Products, c.deps.Decor, id, detail.ParseParams(r.URL.Query()))
	if err != nil {
		logger.WithCtx(r.Context()).Debug("detail view abandoned", "id", id, "error", err)
		return
	}

	status := statusOf(st)
	if status == http.StatusOK {
		response.Success(w, st.Model())
		return
	}
	response.JSON(w, status, st.Message(), st.Model())
}
