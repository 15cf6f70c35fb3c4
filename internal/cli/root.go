// Package cli provides the kennel command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/msomdec/kennel/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type configKey struct{}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "kennel",
		Short: "kennel - a tiny record mapper for dogs",
		Long: `kennel stores dogs (id, name, breed) in a single relational table.

It can manage the table, add and look up dogs from the shell, and serve the
same operations as a JSON API.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			// Command output owns stdout everywhere except serve, where the
			// logs are the output.
			logOut := cmd.ErrOrStderr()
			if cmd.Name() == "serve" {
				logOut = cmd.OutOrStdout()
			}
			logger, err := newLogger(cfg.LogFormat, cfg.LogLevel, logOut, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./kennel.yaml)")
	pf.String("database-driver", "", "Storage backend (sqlite|postgres|memory)")
	pf.String("database-path", "", "Path to the SQLite database file")
	pf.String("database-url", "", "PostgreSQL connection string")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.String("log-format", "", "Log format (text|json|multi)")
	pf.StringP("output", "o", "", "Output format (table|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("database-driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.DriverSQLite, config.DriverPostgres, config.DriverMemory}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newTableCommand())
	rootCmd.AddCommand(newDogsCommand())
	rootCmd.AddCommand(newHashPasswordCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// getConfig returns the config loaded by the root command.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabasePath:   config.DefaultDatabasePath,
		Port:           config.DefaultPort,
		BcryptCost:     config.DefaultBcryptCost,
		LogLevel:       "info",
		LogFormat:      "multi",
		Output:         outputTable,
	}
}
