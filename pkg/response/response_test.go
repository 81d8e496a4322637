package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/megamart/pkg/response"
	"github.com/shashiranjanraj/megamart/pkg/testkit"
)

func TestEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]int{"id": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	testkit.AssertJSONBody(t, `{"status":200,"data":{"id":3}}`, rec.Body.Bytes())
}

func TestErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	response.JSON(rec, http.StatusBadGateway, "Product unavailable", map[string]string{"phase": "failed"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	testkit.AssertJSONBody(t, `{"status":502,"message":"Product unavailable","data":{"phase":"failed"}}`, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{"query": "required"})
	testkit.AssertJSONBody(t, `{"status":422,"message":"Validation failed","errors":{"query":"required"}}`, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	response.TooManyRequests(rec)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
