package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sandeepkv93/catalog-api/internal/domain"
	"github.com/sandeepkv93/catalog-api/internal/observability"
)

type seedCategory struct {
	Name        string
	Description string
	Products    []seedProduct
}

type seedProduct struct {
	Name        string
	Description string
	Price       float64
}

var sampleCatalog = []seedCategory{
	{
		Name:        "Books",
		Description: "Printed and digital books",
		Products: []seedProduct{
			{Name: "The Go Programming Language", Description: "Donovan and Kernighan", Price: 39.99},
			{Name: "Designing Data-Intensive Applications", Description: "Kleppmann", Price: 44.5},
		},
	},
	{
		Name:        "Electronics",
		Description: "Gadgets and accessories",
		Products: []seedProduct{
			{Name: "USB-C Hub", Description: "7-in-1 adapter", Price: 29.9},
			{Name: "Mechanical Keyboard", Description: "Tactile switches", Price: 89},
			{Name: "Noise Cancelling Headphones", Description: "Over-ear, wireless", Price: 199.99},
		},
	},
	{
		Name:        "Home",
		Description: "Kitchen and living",
		Products: []seedProduct{
			{Name: "French Press", Description: "1 litre, glass", Price: 24.95},
		},
	},
}

// SeedReport counts what a seed run created or, in dry-run mode, would create.
type SeedReport struct {
	CreatedCategories int  `json:"created_categories"`
	CreatedProducts   int  `json:"created_products"`
	DryRun            bool `json:"dry_run"`
	Noop              bool `json:"noop"`
}

// SeedCatalog inserts the sample catalog. Rows are matched by name, so
// repeated runs are no-ops. With dryRun the transaction is rolled back.
func SeedCatalog(ctx context.Context, db *gorm.DB, dryRun bool) (*SeedReport, error) {
	start := time.Now()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "seed", time.Since(start))
	}()

	report := &SeedReport{DryRun: dryRun}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sc := range sampleCatalog {
			category := domain.Category{Name: sc.Name, Description: sc.Description}
			res := tx.Omit("Products").Where("name = ?", sc.Name).FirstOrCreate(&category)
			if res.Error != nil {
				return fmt.Errorf("seed category %q: %w", sc.Name, res.Error)
			}
			report.CreatedCategories += int(res.RowsAffected)

			for _, sp := range sc.Products {
				product := domain.Product{CategoryID: category.ID, Name: sp.Name, Description: sp.Description, Price: sp.Price}
				res := tx.Omit("Category").
					Where("category_id = ? AND name = ?", category.ID, sp.Name).
					FirstOrCreate(&product)
				if res.Error != nil {
					return fmt.Errorf("seed product %q: %w", sp.Name, res.Error)
				}
				report.CreatedProducts += int(res.RowsAffected)
			}
		}
		if dryRun {
			return errDryRunRollback
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRunRollback) {
		observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
		return nil, err
	}

	report.Noop = report.CreatedCategories == 0 && report.CreatedProducts == 0
	observability.RecordDatabaseStartupEvent(ctx, "seed", "success")
	return report, nil
}

var errDryRunRollback = errors.New("dry run rollback")

// SampleCatalog returns the categories and products SeedCatalog inserts.
func SampleCatalog() []domain.Category {
	out := make([]domain.Category, 0, len(sampleCatalog))
	for _, sc := range sampleCatalog {
		c := domain.Category{Name: sc.Name, Description: sc.Description}
		for _, sp := range sc.Products {
			c.Products = append(c.Products, domain.Product{Name: sp.Name, Description: sp.Description, Price: sp.Price})
		}
		out = append(out, c)
	}
	return out
}
