package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sandeepkv93/catalog-api/internal/domain"
	"github.com/sandeepkv93/catalog-api/internal/observability"
	"github.com/sandeepkv93/catalog-api/internal/repository"
)

// ProductInput is the full writable state of a product; updates replace every field.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	CategoryID  uint
}

func (in ProductInput) normalize() (ProductInput, error) {
	out := ProductInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		CategoryID:  in.CategoryID,
	}
	if n := utf8.RuneCountInString(out.Name); n == 0 || n > maxNameLength {
		return ProductInput{}, ErrProductInvalidName
	}
	if out.Description == "" {
		return ProductInput{}, ErrProductInvalidDescription
	}
	if out.Price < 0 {
		return ProductInput{}, ErrProductInvalidPrice
	}
	if out.CategoryID == 0 {
		return ProductInput{}, ErrProductInvalidCategory
	}
	return out, nil
}

type ProductServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductServiceImpl {
	return &ProductServiceImpl{repo: repo}
}

func (s *ProductServiceImpl) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "product", "create", outcome, time.Since(start)) }()

	normalized, err := input.normalize()
	if err != nil {
		outcome = "bad_request"
		return nil, err
	}
	product := &domain.Product{
		CategoryID:  normalized.CategoryID,
		Name:        normalized.Name,
		Description: normalized.Description,
		Price:       normalized.Price,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		outcome = failureOutcome(err)
		return nil, err
	}
	return product, nil
}

func (s *ProductServiceImpl) ListAll(ctx context.Context) ([]domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "product", "list_all", outcome, time.Since(start)) }()

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	return products, nil
}

func (s *ProductServiceImpl) ListPaged(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.Product], error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "product", "list", outcome, time.Since(start)) }()

	res, err := s.repo.ListPaged(ctx, req)
	if err != nil {
		outcome = "error"
		return repository.PageResult[domain.Product]{}, err
	}
	return res, nil
}

func (s *ProductServiceImpl) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "product", "get", outcome, time.Since(start)) }()

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		outcome = failureOutcome(err)
		return nil, err
	}
	return product, nil
}

// Update compares every writable field, including the category, and skips the
// write when nothing changed.
func (s *ProductServiceImpl) Update(ctx context.Context, id uint, input ProductInput) (*domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "product", "update", outcome, time.Since(start)) }()

	normalized, err := input.normalize()
	if err != nil {
		outcome = "bad_request"
		return nil, err
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		outcome = failureOutcome(err)
		return nil, err
	}

	updates := map[string]any{}
	if current.Name != normalized.Name {
		updates["name"] = normalized.Name
	}
	if current.Description != normalized.Description {
		updates["description"] = normalized.Description
	}
	if current.Price != normalized.Price {
		updates["price"] = normalized.Price
	}
	if current.CategoryID != normalized.CategoryID {
		updates["category_id"] = normalized.CategoryID
	}
	if len(updates) == 0 {
		outcome = "noop"
		return current, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		outcome = failureOutcome(err)
		return nil, err
	}
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	return updated, nil
}

func (s *ProductServiceImpl) DeleteByID(ctx context.Context, id uint) error {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "product", "delete", outcome, time.Since(start)) }()

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		outcome = failureOutcome(err)
		return err
	}
	return nil
}
