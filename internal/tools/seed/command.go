package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/catalog-api/internal/database"
	"github.com/sandeepkv93/catalog-api/internal/domain"
	"github.com/sandeepkv93/catalog-api/internal/tools/common"
)

const toolName = "seed"

func NewRootCommand() *cobra.Command {
	opts := &common.Options{}
	cmd := &cobra.Command{Use: "seed", Short: "Sample catalog seed tooling"}
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "operation timeout")
	cmd.PersistentFlags().BoolVar(&opts.CI, "ci", false, "non-interactive machine-readable output")
	cmd.AddCommand(newApplyCommand(opts), newDryRunCommand(opts), newShowCommand(opts), newListCommand(opts))
	return cmd
}

func newApplyCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Insert the sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := common.Run(opts, toolName, "apply", func(ctx context.Context) ([]string, error) {
				return seed(ctx, opts.EnvFile, false)
			})
			common.ExitOnError(err)
			return nil
		},
	}
}

func newDryRunCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "dry-run",
		Short: "Show what seeding would insert without committing",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := common.Run(opts, toolName, "dry-run", func(ctx context.Context) ([]string, error) {
				return seed(ctx, opts.EnvFile, true)
			})
			common.ExitOnError(err)
			return nil
		},
	}
}

func newShowCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List the sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := common.Run(opts, toolName, "show", func(context.Context) ([]string, error) {
				return describeSampleCatalog(), nil
			})
			common.ExitOnError(err)
			return nil
		},
	}
}

func newListCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog currently stored in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := common.Run(opts, toolName, "list", func(ctx context.Context) ([]string, error) {
				runner, err := common.OpenRunner(opts.EnvFile)
				if err != nil {
					return nil, err
				}
				defer func() { _ = runner.Close() }()
				categories, products, err := runner.Inventory(ctx)
				if err != nil {
					return nil, err
				}
				return inventoryDetails(categories, products), nil
			})
			common.ExitOnError(err)
			return nil
		},
	}
}

func inventoryDetails(categories []domain.Category, products []domain.Product) []string {
	perCategory := make(map[uint]int, len(categories))
	for _, p := range products {
		perCategory[p.CategoryID]++
	}
	out := []string{fmt.Sprintf("categories=%d products=%d", len(categories), len(products))}
	for _, c := range categories {
		out = append(out, fmt.Sprintf("#%d %s (%d products)", c.ID, c.Name, perCategory[c.ID]))
	}
	return out
}

func seed(ctx context.Context, envFile string, dryRun bool) ([]string, error) {
	runner, err := common.OpenRunner(envFile)
	if err != nil {
		return nil, err
	}
	defer func() { _ = runner.Close() }()

	if err := runner.Up(); err != nil {
		return nil, err
	}
	report, err := runner.Seed(ctx, dryRun)
	if err != nil {
		return nil, err
	}
	return reportDetails(report), nil
}

func reportDetails(r *database.SeedReport) []string {
	verb := "created"
	if r.DryRun {
		verb = "would create"
	}
	details := []string{
		fmt.Sprintf("%s categories: %d", verb, r.CreatedCategories),
		fmt.Sprintf("%s products: %d", verb, r.CreatedProducts),
	}
	if r.Noop {
		details = append(details, "sample catalog already present")
	}
	if r.DryRun {
		details = append(details, "transaction rolled back")
	}
	return details
}

func describeSampleCatalog() []string {
	var out []string
	for _, c := range database.SampleCatalog() {
		out = append(out, fmt.Sprintf("%s (%d products)", c.Name, len(c.Products)))
		for _, p := range c.Products {
			out = append(out, fmt.Sprintf("  %s: %.2f", p.Name, p.Price))
		}
	}
	return out
}
