package controllers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/megamart/app/detail"
	"github.com/shashiranjanraj/megamart/app/views"
	"github.com/shashiranjanraj/megamart/pkg/logger"
)

type ProductController struct {
	deps Deps
}

func NewProductController(d Deps) *ProductController {
	return &ProductController{deps: d}
}

// Show renders the detail page once the product fetch has settled.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, detail.ParseParams(r.URL.Query()))
}

func (c *ProductController) AddToCart(w http.ResponseWriter, r *http.Request) {
	c.handleForm(w, r, detail.AddToCart{})
}

func (c *ProductController) BuyNow(w http.ResponseWriter, r *http.Request) {
	c.handleForm(w, r, detail.BuyNow{})
}

func (c *ProductController) handleForm(w http.ResponseWriter, r *http.Request, a detail.Action) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	c.render(w, r, detail.ParseParams(r.PostForm), a)
}

func (c *ProductController) render(w http.ResponseWriter, r *http.Request, p detail.Params, actions ...detail.Action) {
	id := chi.URLParam(r, "id")

	st, err := detail.Load(r.Context(), c.deps.Products, c.deps.Decor, id, p, actions...)
	if err != nil {
		logger.WithCtx(r.Context()).Debug("detail view abandoned", "id", id, "error", err)
		return
	}

	path := productPath(id)
	body := productBody(path, st)

	title := ""
	if st.Product != nil {
		title = st.Product.Title
	}
	q := url.Values{}
	if r.URL.Query().Get("menu") == "open" {
		q.Set("menu", "open")
	}
	c.deps.Views.HTML(w, r, statusOf(st), "product", views.NewPage(title, path, q, body))
}

func productPath(id string) string {
	return "/product/" + url.PathEscape(id)
}

// productBody precomputes the links for the next state of every control.
func productBody(path string, st detail.State) views.Product {
	href := func(next detail.State) string {
		if q := detail.ParamsOf(next).Encode(); q != "" {
			return path + "?" + q
		}
		return path
	}

	return views.Product{
		Model:      st.Model(),
		Path:       path,
		Hidden:     detail.ParamsOf(st).Values(),
		IncHref:    href(detail.Reduce(st, detail.Increment{})),
		DecHref:    href(detail.Reduce(st, detail.Decrement{})),
		FavHref:    href(detail.Reduce(st, detail.ToggleFavorite{})),
		CartAction: path + "/cart",
		BuyAction:  path + "/buy",
	}
}
