package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sandeepkv93/catalog-api/internal/domain"
	"github.com/sandeepkv93/catalog-api/internal/observability"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
)

func recordOperation(ctx context.Context, entity, op string, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrProductNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	observability.RecordRepositoryOperation(ctx, entity, op, outcome)
}

func findCategory(tx *gorm.DB, id uint) (*domain.Category, error) {
	var category domain.Category
	if err := tx.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("load category %d: %w", id, err)
	}
	return &category, nil
}
