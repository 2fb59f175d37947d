package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sandeepkv93/catalog-api/internal/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint) (*domain.Category, error)
	ListAll(ctx context.Context) ([]domain.Category, error)
	ListPaged(ctx context.Context, req PageRequest) (PageResult[domain.Category], error)
	Update(ctx context.Context, id uint, updates map[string]any) error
	// DeleteByID removes the category and its products, returning how many
	// products went with it.
	DeleteByID(ctx context.Context, id uint) (int64, error)
}

type GormCategoryRepository struct {
	db       *gorm.DB
	maxLimit int
}

func NewCategoryRepository(db *gorm.DB, maxLimit int) CategoryRepository {
	return &GormCategoryRepository{db: db, maxLimit: maxLimit}
}

func preloadProducts(db *gorm.DB) *gorm.DB {
	return db.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("name asc").Order("id asc")
	})
}

func (r *GormCategoryRepository) Create(ctx context.Context, category *domain.Category) (err error) {
	defer func() { recordOperation(ctx, "category", "create", err) }()
	return r.db.WithContext(ctx).Omit("Products").Create(category).Error
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uint) (_ *domain.Category, err error) {
	defer func() { recordOperation(ctx, "category", "find_by_id", err) }()

	var category domain.Category
	if err := preloadProducts(r.db.WithContext(ctx)).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) ListAll(ctx context.Context) (_ []domain.Category, err error) {
	defer func() { recordOperation(ctx, "category", "list_all", err) }()

	var categories []domain.Category
	if err := r.db.WithContext(ctx).Order("name asc").Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormCategoryRepository) ListPaged(ctx context.Context, req PageRequest) (_ PageResult[domain.Category], err error) {
	defer func() { recordOperation(ctx, "category", "list_paged", err) }()

	normalized := NormalizePageRequest(req, r.maxLimit)
	result := PageResult[domain.Category]{
		Items: []domain.Category{},
		Page:  normalized.Page,
		Limit: normalized.Limit,
	}
	if err := r.db.WithContext(ctx).Model(&domain.Category{}).Count(&result.Total).Error; err != nil {
		return PageResult[domain.Category]{}, err
	}
	err = preloadProducts(r.db.WithContext(ctx)).
		Order("name asc").
		Order("id asc").
		Offset(normalized.offset()).
		Limit(normalized.Limit).
		Find(&result.Items).Error
	if err != nil {
		return PageResult[domain.Category]{}, err
	}
	result.TotalPages = calcTotalPages(result.Total, normalized.Limit)
	return result, nil
}

func (r *GormCategoryRepository) Update(ctx context.Context, id uint, updates map[string]any) (err error) {
	defer func() { recordOperation(ctx, "category", "update", err) }()

	res := r.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *GormCategoryRepository) DeleteByID(ctx context.Context, id uint) (removedProducts int64, err error) {
	defer func() { recordOperation(ctx, "category", "delete_by_id", err) }()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Remove dependents explicitly so the cascade holds even where the
		// connection does not enforce foreign keys.
		res := tx.Where("category_id = ?", id).Delete(&domain.Product{})
		if res.Error != nil {
			return res.Error
		}
		removedProducts = res.RowsAffected

		res = tx.Delete(&domain.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removedProducts, nil
}
