package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sandeepkv93/catalog-api/internal/domain"
	"github.com/sandeepkv93/catalog-api/internal/repository"
)

func newProductServiceForTest(t *testing.T) (*ProductServiceImpl, *stubProductRepo, *domain.Category) {
	t.Helper()
	categories := &stubCategoryRepo{}
	category := &domain.Category{Name: "Garden", Description: "Outdoor"}
	if err := categories.Create(context.Background(), category); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	repo := &stubProductRepo{categories: categories}
	return NewProductService(repo), repo, category
}

func TestProductServiceValidation(t *testing.T) {
	svc, _, category := newProductServiceForTest(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ProductInput
		want  error
	}{
		{name: "blank name", input: ProductInput{Name: " ", Description: "d", Price: 1, CategoryID: category.ID}, want: ErrProductInvalidName},
		{name: "blank description", input: ProductInput{Name: "Rake", Description: "", Price: 1, CategoryID: category.ID}, want: ErrProductInvalidDescription},
		{name: "negative price", input: ProductInput{Name: "Rake", Description: "d", Price: -1, CategoryID: category.ID}, want: ErrProductInvalidPrice},
		{name: "missing category", input: ProductInput{Name: "Rake", Description: "d", Price: 1}, want: ErrProductInvalidCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestProductServiceCreateWithUnknownCategory(t *testing.T) {
	svc, repo, _ := newProductServiceForTest(t)

	_, err := svc.Create(context.Background(), ProductInput{Name: "Rake", Description: "d", Price: 3, CategoryID: 99})
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected nothing stored, got %d items", len(repo.items))
	}
}

func TestProductServiceCRUDFlow(t *testing.T) {
	svc, repo, category := newProductServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{Name: " Rake ", Description: "Leaf rake", Price: 19.99, CategoryID: category.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Name != "Rake" || created.Category == nil || created.Category.ID != category.ID {
		t.Fatalf("unexpected created product: %+v", created)
	}

	updated, err := svc.Update(ctx, created.ID, ProductInput{Name: "Rake", Description: "Leaf rake", Price: 17.5, CategoryID: category.ID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 17.5 || repo.updates != 1 {
		t.Fatalf("expected one write for the price change, got updates=%d product=%+v", repo.updates, updated)
	}

	if _, err := svc.Update(ctx, created.ID, ProductInput{Name: "Rake", Description: "Leaf rake", Price: 17.5, CategoryID: 42}); !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound when moving to unknown category, got %v", err)
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one product, got %d", len(all))
	}

	if err := svc.DeleteByID(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, repository.ErrProductNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestProductServiceUpdateWithIdenticalInputSkipsWrite(t *testing.T) {
	svc, repo, category := newProductServiceForTest(t)
	ctx := context.Background()

	input := ProductInput{Name: "Shovel", Description: "Steel", Price: 25, CategoryID: category.ID}
	created, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.Update(ctx, created.ID, input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("expected no write for identical payload, got %d", repo.updates)
	}
	if got.ID != created.ID || got.Price != 25 || got.Name != "Shovel" {
		t.Fatalf("expected unchanged product, got %+v", got)
	}
}
