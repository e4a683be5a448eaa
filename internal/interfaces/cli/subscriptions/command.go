// Package subscriptions holds one-off subscription maintenance commands.
package subscriptions

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bizblocks/bizblocks/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/bizblocks/bizblocks/internal/interfaces/http"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "Subscription maintenance",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Expire and cancel lapsed subscriptions once",
		Long:  `Expire subscriptions whose grace period is over and cancel those whose paid period ended after a cancellation.`,
		RunE:  runSweep,
	})

	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := bootstrap.Setup(ctx, bootstrap.Options{Env: env, ConfigPath: configPath})
	if err != nil {
		return err
	}
	defer rt.Close()

	container, err := httpRouter.NewContainer(rt.DB, nil, rt.Config, rt.Log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}

	result, err := container.SweepLapsedSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "examined=%d expired=%d cancelled=%d\n", result.Examined, result.Expired, result.Cancelled)
	return nil
}
