package main

import (
	"context"
	"fmt"
	"os"

	"lifeos/internal/config"
	"lifeos/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "lifeos",
		Short:         "Life OS command line: check-ins, smoke-free tracker and weekly insights",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newInsightsCmd(),
		newTrendsCmd(),
		newTrackerCmd(),
		newCheckInCmd(),
		newStatusCmd(),
		newUrgeCmd(),
		newUrgesCmd(),
		newExportCmd(),
		newImportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openContainer loads configuration from the environment and wires every
// service over a migrated database. The caller owns Shutdown.
func openContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := container.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c, err := container.New(cfg, nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := c.InitWithDatabase(db); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *container.Container) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := openContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer c.Shutdown(ctx)

	return fn(ctx, c)
}
