package service

import (
	"context"
	"sort"

	"github.com/sandeepkv93/catalog-api/internal/domain"
	"github.com/sandeepkv93/catalog-api/internal/repository"
)

type stubCategoryRepo struct {
	items   map[uint]domain.Category
	nextID  uint
	updates int
	err     error
}

func (s *stubCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	if s.err != nil {
		return s.err
	}
	if s.items == nil {
		s.items = map[uint]domain.Category{}
	}
	if s.nextID == 0 {
		s.nextID = 1
	}
	category.ID = s.nextID
	s.nextID++
	s.items[category.ID] = *category
	return nil
}

func (s *stubCategoryRepo) FindByID(_ context.Context, id uint) (*domain.Category, error) {
	category, ok := s.items[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	cp := category
	return &cp, nil
}

func (s *stubCategoryRepo) ListAll(context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubCategoryRepo) ListPaged(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.Category], error) {
	normalized := repository.NormalizePageRequest(req, repository.DefaultMaxLimit)
	items, _ := s.ListAll(ctx)
	return repository.PageResult[domain.Category]{
		Items:      items,
		Page:       normalized.Page,
		Limit:      normalized.Limit,
		Total:      int64(len(items)),
		TotalPages: 1,
	}, nil
}

func (s *stubCategoryRepo) Update(_ context.Context, id uint, updates map[string]any) error {
	category, ok := s.items[id]
	if !ok {
		return repository.ErrCategoryNotFound
	}
	s.updates++
	if v, ok := updates["name"].(string); ok {
		category.Name = v
	}
	if v, ok := updates["description"].(string); ok {
		category.Description = v
	}
	s.items[id] = category
	return nil
}

func (s *stubCategoryRepo) DeleteByID(_ context.Context, id uint) (int64, error) {
	if _, ok := s.items[id]; !ok {
		return 0, repository.ErrCategoryNotFound
	}
	delete(s.items, id)
	return 0, nil
}

type stubProductRepo struct {
	categories *stubCategoryRepo
	items      map[uint]domain.Product
	nextID     uint
	updates    int
}

func (s *stubProductRepo) Create(ctx context.Context, product *domain.Product) error {
	category, err := s.categories.FindByID(ctx, product.CategoryID)
	if err != nil {
		return err
	}
	if s.items == nil {
		s.items = map[uint]domain.Product{}
	}
	if s.nextID == 0 {
		s.nextID = 1
	}
	product.ID = s.nextID
	product.Category = category
	s.nextID++
	s.items[product.ID] = *product
	return nil
}

func (s *stubProductRepo) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	product, ok := s.items[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := product
	return &cp, nil
}

func (s *stubProductRepo) ListAll(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubProductRepo) ListPaged(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.Product], error) {
	normalized := repository.NormalizePageRequest(req, repository.DefaultMaxLimit)
	items, _ := s.ListAll(ctx)
	return repository.PageResult[domain.Product]{
		Items:      items,
		Page:       normalized.Page,
		Limit:      normalized.Limit,
		Total:      int64(len(items)),
		TotalPages: 1,
	}, nil
}

func (s *stubProductRepo) Update(ctx context.Context, id uint, updates map[string]any) error {
	product, ok := s.items[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	if v, ok := updates["category_id"].(uint); ok {
		category, err := s.categories.FindByID(ctx, v)
		if err != nil {
			return err
		}
		product.CategoryID = v
		product.Category = category
	}
	s.updates++
	if v, ok := updates["name"].(string); ok {
		product.Name = v
	}
	if v, ok := updates["description"].(string); ok {
		product.Description = v
	}
	if v, ok := updates["price"].(float64); ok {
		product.Price = v
	}
	s.items[id] = product
	return nil
}

func (s *stubProductRepo) DeleteByID(_ context.Context, id uint) error {
	if _, ok := s.items[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(s.items, id)
	return nil
}
