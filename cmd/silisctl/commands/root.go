// Package commands implements silisctl, the operator CLI for the Silis
// backend.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/silis/backend/internal/config"
	"github.com/silis/backend/internal/logging"
	"github.com/silis/backend/internal/repository"
)

// openStores is replaced in tests.
var openStores = repository.Open

// loadConfig is replaced in tests.
var loadConfig = config.Load

func Execute() error {
	return NewRootCommand(os.Stdin, os.Stdout).Execute()
}

// NewRootCommand builds the command tree reading from in and printing to out.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "silisctl",
		Short:        "Operator tools for the Silis language-center backend",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logLevel)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "log level for diagnostic output")

	root.AddCommand(hashPasswordCmd(), contentCmd(), indexesCmd())
	return root
}

// withStores loads the configuration, opens the configured backend and
// closes it once fn returns.
func withStores(ctx context.Context, fn func(*config.Config, *repository.Stores) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = stores.Close(context.Background()) }()
	return fn(cfg, stores)
}
