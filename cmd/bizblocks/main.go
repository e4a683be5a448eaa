package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/bizblocks/bizblocks/internal/interfaces/cli/migrate"
	"github.com/bizblocks/bizblocks/internal/interfaces/cli/server"
	"github.com/bizblocks/bizblocks/internal/interfaces/cli/subscriptions"
	"github.com/bizblocks/bizblocks/internal/interfaces/cli/worker"
	"github.com/bizblocks/bizblocks/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "bizblocks",
		Short:        "BizBlocks - block marketplace entitlement and billing engine",
		Long:         `BizBlocks serves the block catalog, checkout and subscription lifecycle, with commands for migrations and background jobs.`,
		Version:      version.Current,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		worker.NewCommand(),
		migrate.NewCommand(),
		subscriptions.NewCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
