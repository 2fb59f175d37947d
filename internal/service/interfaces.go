package service

import (
	"context"

	"github.com/sandeepkv93/catalog-api/internal/domain"
	"github.com/sandeepkv93/catalog-api/internal/repository"
)

//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=gomock/mock_services.go -package=servicegomock

type CategoryService interface {
	Create(ctx context.Context, input CategoryInput) (*domain.Category, error)
	ListAll(ctx context.Context) ([]domain.Category, error)
	ListPaged(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.Category], error)
	GetByID(ctx context.Context, id uint) (*domain.Category, error)
	Update(ctx context.Context, id uint, input CategoryInput) (*domain.Category, error)
	DeleteByID(ctx context.Context, id uint) (int64, error)
}

type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListPaged(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.Product], error)
	GetByID(ctx context.Context, id uint) (*domain.Product, error)
	Update(ctx context.Context, id uint, input ProductInput) (*domain.Product, error)
	DeleteByID(ctx context.Context, id uint) error
}
