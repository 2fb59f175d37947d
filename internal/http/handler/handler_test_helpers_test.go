package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

const testMaxLimit = 50

func newCatalogTestRouter(categories *CategoryHandler, products *ProductHandler) http.Handler {
	r := chi.NewRouter()
	if categories != nil {
		r.Route("/api/categories", func(r chi.Router) {
			r.Get("/get", categories.List)
			r.Get("/{id}/get", categories.GetByID)
			r.Post("/create", categories.Create)
			r.Put("/{id}/update", categories.Update)
			r.Delete("/{id}/delete", categories.Delete)
		})
	}
	if products != nil {
		r.Route("/api/products", func(r chi.Router) {
			r.Get("/get", products.List)
			r.Get("/{id}/get", products.GetByID)
			r.Post("/create", products.Create)
			r.Put("/{id}/update", products.Update)
			r.Delete("/{id}/delete", products.Delete)
		})
	}
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response: %v body=%s", err, rr.Body.String())
	}
	return rr, env
}
