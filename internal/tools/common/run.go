package common

import (
	"context"
	"os"
	"time"

	"github.com/sandeepkv93/catalog-api/internal/config"
	"github.com/sandeepkv93/catalog-api/internal/di"
	"github.com/sandeepkv93/catalog-api/internal/observability"
	"github.com/sandeepkv93/catalog-api/internal/tools/ui"
)

// ExitCodeFailure is returned to the shell when a tool command fails.
const ExitCodeFailure = 3

var exitFunc = os.Exit

// Options are the flags every operator tool shares.
type Options struct {
	EnvFile string
	Timeout time.Duration
	CI      bool
}

type Action func(ctx context.Context) ([]string, error)

// Run executes fn either headless (CI) or behind the interactive progress view,
// records tool metrics and, in CI mode, prints a JSON result.
func Run(opts *Options, tool, command string, fn Action) ([]string, error) {
	start := time.Now()
	title := tool + " " + command

	var (
		details []string
		err     error
	)
	if opts.CI {
		ctx, cancel := context.WithTimeout(context.Background(), timeoutOrDefault(opts.Timeout))
		details, err = fn(ctx)
		cancel()
	} else {
		details, err = ui.Run(title, timeoutOrDefault(opts.Timeout), fn)
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ctx := context.Background()
	observability.RecordToolCommandRun(ctx, tool, command, outcome)
	observability.RecordToolCommandDuration(ctx, tool, command, outcome, time.Since(start))

	if opts.CI {
		PrintCIResult(err == nil, title, details, err)
	}
	return details, err
}

// ExitOnError terminates the process with ExitCodeFailure when err is set.
func ExitOnError(err error) {
	if err != nil {
		exitFunc(ExitCodeFailure)
	}
}

// OpenRunner loads envFile and builds the database runner shared by the
// migrate and seed tools.
func OpenRunner(envFile string) (*di.MigrationRunner, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	return di.InitializeMigrationRunner()
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 2 * time.Minute
	}
	return d
}
