package handler

import "github.com/sandeepkv93/catalog-api/internal/domain"

type productSummaryView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type categoryWriteView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type categoryDetailView struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Products    []productSummaryView `json:"products"`
}

type productDetailView struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Category    *categoryWriteView `json:"category"`
}

func newCategoryWriteView(c *domain.Category) categoryWriteView {
	return categoryWriteView{ID: c.ID, Name: c.Name, Description: c.Description}
}

func newCategoryDetailView(c *domain.Category) categoryDetailView {
	products := make([]productSummaryView, 0, len(c.Products))
	for _, p := range c.Products {
		products = append(products, productSummaryView{ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price})
	}
	return categoryDetailView{ID: c.ID, Name: c.Name, Description: c.Description, Products: products}
}

func newCategoryDetailViews(items []domain.Category) []categoryDetailView {
	out := make([]categoryDetailView, 0, len(items))
	for i := range items {
		out = append(out, newCategoryDetailView(&items[i]))
	}
	return out
}

func newProductDetailView(p *domain.Product) productDetailView {
	view := productDetailView{ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price}
	if p.Category != nil {
		c := newCategoryWriteView(p.Category)
		view.Category = &c
	}
	return view
}

func newProductDetailViews(items []domain.Product) []productDetailView {
	out := make([]productDetailView, 0, len(items))
	for i := range items {
		out = append(out, newProductDetailView(&items[i]))
	}
	return out
}
