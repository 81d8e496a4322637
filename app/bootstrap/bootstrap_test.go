package bootstrap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/megamart/app/bootstrap"
	"github.com/shashiranjanraj/megamart/app/services"
	"github.com/shashiranjanraj/megamart/pkg/decor"
)

func TestBoot_OfflineStaticCatalog(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	t.Setenv("CATALOG_SOURCE", "static")
	t.Setenv("CACHE_DRIVER", "memory")

	ctx := context.Background()
	s, err := bootstrap.Boot(ctx, bootstrap.Options{Offline: true, Decor: decor.Fixed(10)})
	require.NoError(t, err)
	defer func() { assert.NoError(t, s.Close(ctx)) }()

	assert.Equal(t, "none", s.Store.Driver())
	assert.False(t, s.Products.Caching())
	assert.IsType(t, services.StaticCatalog{}, s.Catalog)

	h := s.Application().Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "-10%")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStorefront_RoutesAreNamed(t *testing.T) {
	ctx := context.Background()
	s, err := bootstrap.Boot(ctx, bootstrap.Options{Offline: true})
	require.NoError(t, err)
	defer s.Close(ctx) //nolint:errcheck

	r := s.Application().Router()
	for _, name := range []string{
		"home", "home.alias", "home.cart",
		"product.show", "product.cart", "product.buy", "product.events", "product.live",
		"api.products.index", "api.products.show", "graphql", "metrics", "health",
	} {
		_, ok := r.Path(name)
		assert.True(t, ok, name)
	}

	href, err := r.URL("product.show", map[string]string{"id": "3"})
	require.NoError(t, err)
	assert.Equal(t, "/product/3", href)
}
