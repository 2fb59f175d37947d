package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/catalog-api/internal/tools/common"
)

const toolName = "migrate"

func NewRootCommand() *cobra.Command {
	opts := &common.Options{}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Catalog schema migration tooling",
	}
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "operation timeout")
	cmd.PersistentFlags().BoolVar(&opts.CI, "ci", false, "non-interactive machine-readable output")

	cmd.AddCommand(
		newUpCommand(opts),
		newStatusCommand(opts),
		newPlanCommand(opts),
	)
	return cmd
}

func newUpCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := common.Run(opts, toolName, "up", func(ctx context.Context) ([]string, error) {
				runner, err := common.OpenRunner(opts.EnvFile)
				if err != nil {
					return nil, err
				}
				defer func() { _ = runner.Close() }()

				if err := runner.Up(); err != nil {
					return nil, err
				}
				cfg := runner.Config()
				return []string{
					"schema migration applied",
					"driver: " + cfg.DatabaseDriver,
					"service: " + cfg.OTELServiceName,
				}, nil
			})
			common.ExitOnError(err)
			return nil
		},
	}
}

func newStatusCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the catalog schema is up to date",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := common.Run(opts, toolName, "status", func(ctx context.Context) ([]string, error) {
				runner, err := common.OpenRunner(opts.EnvFile)
				if err != nil {
					return nil, err
				}
				defer func() { _ = runner.Close() }()
				if err := runner.Ping(ctx); err != nil {
					return nil, fmt.Errorf("db ping: %w", err)
				}
				statuses, err := runner.Status()
				if err != nil {
					return nil, err
				}
				details := []string{"database reachable"}
				for _, s := range statuses {
					switch {
					case !s.Exists:
						details = append(details, s.Table+": missing")
					case len(s.MissingColumns) > 0:
						details = append(details, fmt.Sprintf("%s: missing columns %v", s.Table, s.MissingColumns))
					default:
						details = append(details, s.Table+": up to date")
					}
				}
				return details, nil
			})
			common.ExitOnError(err)
			return nil
		},
	}
}

func newPlanCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show pending schema changes (dry-run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := common.Run(opts, toolName, "plan", func(ctx context.Context) ([]string, error) {
				runner, err := common.OpenRunner(opts.EnvFile)
				if err != nil {
					return nil, err
				}
				defer func() { _ = runner.Close() }()
				if err := runner.Ping(ctx); err != nil {
					return nil, fmt.Errorf("db ping: %w", err)
				}
				steps, err := runner.Plan()
				if err != nil {
					return nil, err
				}
				if len(steps) == 0 {
					return []string{"schema up to date, nothing to apply"}, nil
				}
				return append(steps, "no mutation executed in plan mode"), nil
			})
			common.ExitOnError(err)
			return nil
		},
	}
}
