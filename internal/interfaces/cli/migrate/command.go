package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bizblocks/bizblocks/internal/infrastructure/migration"
	"github.com/bizblocks/bizblocks/internal/interfaces/cli/bootstrap"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

var (
	env        string
	configPath string
	name       string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending migrations. sqlite databases are migrated from the models instead of the versioned scripts.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations. MySQL only.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database. MySQL only.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new SQL migration file with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func setup(cmd *cobra.Command) (*bootstrap.Runtime, error) {
	return bootstrap.Setup(cmd.Context(), bootstrap.Options{Env: env, ConfigPath: configPath})
}

// gooseOnly rejects sqlite, which has no versioned history.
func gooseOnly(rt *bootstrap.Runtime, command string) (*migration.GooseStrategy, error) {
	if rt.Config.Database.IsSQLite() {
		return nil, fmt.Errorf("%s is only supported for mysql; sqlite is migrated from the models", command)
	}
	return migration.NewGooseStrategy(migration.DefaultScriptsDir, rt.Log), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	strategy := migration.NewStrategy(rt.Config.Database.Driver, rt.Log)
	rt.Log.Infow("running up migrations", "environment", env, "strategy", strategy.GetName())

	if err := strategy.Migrate(cmd.Context(), rt.DB); err != nil {
		rt.Log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	rt.Log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	strategy, err := gooseOnly(rt, "down")
	if err != nil {
		return err
	}

	rt.Log.Infow("running down migrations", "environment", env, "steps", steps)
	if err := strategy.MigrateDown(cmd.Context(), rt.DB, steps); err != nil {
		rt.Log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	rt.Log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	strategy, err := gooseOnly(rt, "status")
	if err != nil {
		return err
	}

	version, err := strategy.GetVersion(cmd.Context(), rt.DB)
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if err := strategy.Status(cmd.Context(), rt.DB); err != nil {
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger()
	log.Infow("creating new migration", "name", name)

	strategy := migration.NewGooseStrategy(migration.DefaultScriptsDir, log)
	if err := strategy.Create(name); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, migration.DefaultScriptsDir)
	return nil
}
