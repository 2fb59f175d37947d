package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sandeepkv93/catalog-api/internal/domain"
	"github.com/sandeepkv93/catalog-api/internal/observability"
	"github.com/sandeepkv93/catalog-api/internal/repository"
)

// CategoryInput is the full writable state of a category; updates replace both fields.
type CategoryInput struct {
	Name        string
	Description string
}

func (in CategoryInput) normalize() (CategoryInput, error) {
	out := CategoryInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if n := utf8.RuneCountInString(out.Name); n == 0 || n > maxNameLength {
		return CategoryInput{}, ErrCategoryInvalidName
	}
	if out.Description == "" {
		return CategoryInput{}, ErrCategoryInvalidDescription
	}
	return out, nil
}

type CategoryServiceImpl struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryServiceImpl {
	return &CategoryServiceImpl{repo: repo}
}

func (s *CategoryServiceImpl) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "category", "create", outcome, time.Since(start)) }()

	normalized, err := input.normalize()
	if err != nil {
		outcome = "bad_request"
		return nil, err
	}
	category := &domain.Category{Name: normalized.Name, Description: normalized.Description}
	if err := s.repo.Create(ctx, category); err != nil {
		outcome = "error"
		return nil, err
	}
	return category, nil
}

func (s *CategoryServiceImpl) ListAll(ctx context.Context) ([]domain.Category, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "category", "list_all", outcome, time.Since(start)) }()

	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	return categories, nil
}

func (s *CategoryServiceImpl) ListPaged(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.Category], error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "category", "list", outcome, time.Since(start)) }()

	res, err := s.repo.ListPaged(ctx, req)
	if err != nil {
		outcome = "error"
		return repository.PageResult[domain.Category]{}, err
	}
	return res, nil
}

func (s *CategoryServiceImpl) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "category", "get", outcome, time.Since(start)) }()

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		outcome = failureOutcome(err)
		return nil, err
	}
	return category, nil
}

// Update leaves the row untouched and returns the stored category when the
// input matches what is already persisted.
func (s *CategoryServiceImpl) Update(ctx context.Context, id uint, input CategoryInput) (*domain.Category, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "category", "update", outcome, time.Since(start)) }()

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

func (s *CategoryServiceImpl) DeleteByID(ctx context.Context, id uint) (int64, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCatalogOperation(ctx, "category", "delete", outcome, time.Since(start)) }()

	removed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		outcome = failureOutcome(err)
		return 0, err
	}
	return removed, nil
}

func failureOutcome(err error) string {
	if errors.Is(err, repository.ErrCategoryNotFound) || errors.Is(err, repository.ErrProductNotFound) {
		return "not_found"
	}
	return "error"
}
