package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sandeepkv93/catalog-api/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListPaged(ctx context.Context, req PageRequest) (PageResult[domain.Product], error)
	Update(ctx context.Context, id uint, updates map[string]any) error
	DeleteByID(ctx context.Context, id uint) error
}

type GormProductRepository struct {
	db       *gorm.DB
	maxLimit int
}

func NewProductRepository(db *gorm.DB, maxLimit int) ProductRepository {
	return &GormProductRepository{db: db, maxLimit: maxLimit}
}

// Create fails with ErrCategoryNotFound, writing nothing, when the referenced
// category does not exist.
func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) (err error) {
	defer func() { recordOperation(ctx, "product", "create", err) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := findCategory(tx, product.CategoryID)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		product.Category = category
		return nil
	})
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (_ *domain.Product, err error) {
	defer func() { recordOperation(ctx, "product", "find_by_id", err) }()

	var product domain.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) ListAll(ctx context.Context) (_ []domain.Product, err error) {
	defer func() { recordOperation(ctx, "product", "list_all", err) }()

	var products []domain.Product
	if err := r.db.WithContext(ctx).Preload("Category").Order("name asc").Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) ListPaged(ctx context.Context, req PageRequest) (_ PageResult[domain.Product], err error) {
	defer func() { recordOperation(ctx, "product", "list_paged", err) }()

	normalized := NormalizePageRequest(req, r.maxLimit)
	result := PageResult[domain.Product]{
		Items: []domain.Product{},
		Page:  normalized.Page,
		Limit: normalized.Limit,
	}
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&result.Total).Error; err != nil {
		return PageResult[domain.Product]{}, err
	}
	err = r.db.WithContext(ctx).
		Preload("Category").
		Order("name asc").
		Order("id asc").
		Offset(normalized.offset()).
		Limit(normalized.Limit).
		Find(&result.Items).Error
	if err != nil {
		return PageResult[domain.Product]{}, err
	}
	result.TotalPages = calcTotalPages(result.Total, normalized.Limit)
	return result, nil
}

// Update checks a changed category_id against the categories table inside the
// same transaction as the write.
func (r *GormProductRepository) Update(ctx context.Context, id uint, updates map[string]any) (err error) {
	defer func() { recordOperation(ctx, "product", "update", err) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if raw, ok := updates["category_id"]; ok {
			categoryID, _ := raw.(uint)
			if _, err := findCategory(tx, categoryID); err != nil {
				return err
			}
		}
		res := tx.Model(&domain.Product{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

func (r *GormProductRepository) DeleteByID(ctx context.Context, id uint) (err error) {
	defer func() { recordOperation(ctx, "product", "delete_by_id", err) }()

	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
