package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/sandeepkv93/catalog-api/internal/domain"
	"github.com/sandeepkv93/catalog-api/internal/repository"
	"github.com/sandeepkv93/catalog-api/internal/service"
	servicegomock "github.com/sandeepkv93/catalog-api/internal/service/gomock"
	"go.uber.org/mock/gomock"
)

func TestProductHandlerListEmbedsCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockProductService(ctrl)
	router := newCatalogTestRouter(nil, NewProductHandler(svc, testMaxLimit))

	svc.EXPECT().ListPaged(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req repository.PageRequest) (repository.PageResult[domain.Product], error) {
		if req.Page != 3 || req.Limit != 2 {
			t.Fatalf("unexpected page request %+v", req)
		}
		items := []domain.Product{{
			ID: 7, CategoryID: 1, Name: "Lamp", Description: "Bright", Price: 19.99,
			Category: &domain.Category{ID: 1, Name: "Home", Description: "House things"},
		}}
		return repository.PageResult[domain.Product]{Items: items, Page: 3, Limit: 2, Total: 5, TotalPages: 3}, nil
	})

	rr, env := doRequest(t, router, http.MethodGet, "/api/products/get?page=3&limit=2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if env["prevPage"] != "/api/products/get?page=2&limit=2" {
		t.Fatalf("unexpected prevPage: %v", env["prevPage"])
	}
	if _, ok := env["nextPage"]; ok {
		t.Fatalf("last page must not link forward: %v", env)
	}
	product := env["data"].([]any)[0].(map[string]any)
	category := product["category"].(map[string]any)
	if category["name"] != "Home" || category["description"] != "House things" {
		t.Fatalf("unexpected embedded category: %v", category)
	}
	if _, ok := category["products"]; ok {
		t.Fatal("embedded category must not list products")
	}
}

func TestProductHandlerCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockProductService(ctrl)
	router := newCatalogTestRouter(nil, NewProductHandler(svc, testMaxLimit))

	t.Run("zero price is accepted", func(t *testing.T) {
		svc.EXPECT().Create(gomock.Any(), service.ProductInput{Name: "Sample", Description: "Free", Price: 0, CategoryID: 2}).
			Return(&domain.Product{ID: 11, CategoryID: 2, Name: "Sample", Description: "Free", Category: &domain.Category{ID: 2, Name: "Promo", Description: "Giveaways"}}, nil)

		rr, env := doRequest(t, router, http.MethodPost, "/api/products/create", `{"name":"Sample","description":"Free","price":0,"categoryId":2}`)
		if rr.Code != http.StatusOK || env["message"] != "Created successfully" {
			t.Fatalf("expected created, got %d %v", rr.Code, env)
		}
		if env["data"].(map[string]any)["category"].(map[string]any)["id"] != float64(2) {
			t.Fatalf("expected category in response: %v", env["data"])
		}
	})

	t.Run("unknown category is a 404", func(t *testing.T) {
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, repository.ErrCategoryNotFound)

		rr, env := doRequest(t, router, http.MethodPost, "/api/products/create", `{"name":"Lamp","description":"Bright","price":5,"categoryId":99}`)
		if rr.Code != http.StatusNotFound || env["message"] != "Category not found" {
			t.Fatalf("expected 404, got %d %v", rr.Code, env)
		}
	})

	t.Run("missing and negative fields fail validation", func(t *testing.T) {
		rr, env := doRequest(t, router, http.MethodPost, "/api/products/create", `{"name":"Lamp","description":"Bright","price":-1}`)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		fields := env["data"].(map[string]any)
		if _, ok := fields["price"]; !ok {
			t.Fatalf("expected price error: %v", fields)
		}
		if _, ok := fields["categoryId"]; !ok {
			t.Fatalf("expected categoryId error: %v", fields)
		}
	})

	t.Run("service validation error is a 400", func(t *testing.T) {
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, service.ErrProductInvalidName)

		rr, env := doRequest(t, router, http.MethodPost, "/api/products/create", `{"name":"x","description":"y","price":1,"categoryId":1}`)
		if rr.Code != http.StatusBadRequest || env["message"] != "Validation failed" {
			t.Fatalf("expected 400, got %d %v", rr.Code, env)
		}
	})
}

func TestProductHandlerUpdateGetDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockProductService(ctrl)
	router := newCatalogTestRouter(nil, NewProductHandler(svc, testMaxLimit))

	svc.EXPECT().Update(gomock.Any(), uint(3), service.ProductInput{Name: "Lamp", Description: "Dim", Price: 4.5, CategoryID: 1}).
		Return(&domain.Product{ID: 3, CategoryID: 1, Name: "Lamp", Description: "Dim", Price: 4.5}, nil)
	rr, env := doRequest(t, router, http.MethodPut, "/api/products/3/update", `{"name":"Lamp","description":"Dim","price":4.5,"categoryId":1}`)
	if rr.Code != http.StatusOK || env["message"] != "Product updated successfully" {
		t.Fatalf("expected update success, got %d %v", rr.Code, env)
	}

	svc.EXPECT().GetByID(gomock.Any(), uint(3)).Return(nil, repository.ErrProductNotFound)
	rr, env = doRequest(t, router, http.MethodGet, "/api/products/3/get", "")
	if rr.Code != http.StatusNotFound || env["message"] != "Product not found" {
		t.Fatalf("expected 404, got %d %v", rr.Code, env)
	}

	svc.EXPECT().DeleteByID(gomock.Any(), uint(3)).Return(nil)
	rr, env = doRequest(t, router, http.MethodDelete, "/api/products/3/delete", "")
	if rr.Code != http.StatusOK || env["message"] != "Product deleted successfully" {
		t.Fatalf("expected delete success, got %d %v", rr.Code, env)
	}

	rr, _ = doRequest(t, router, http.MethodDelete, "/api/products/0/delete", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero id, got %d", rr.Code)
	}
}
