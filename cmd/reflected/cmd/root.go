package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tuannm99/reflected/internal"
	"github.com/tuannm99/reflected/internal/schemadef"
)

// cfg is loaded by the root PersistentPreRunE before any subcommand runs.
var cfg *internal.ReflectedConfig

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reflected",
		Short: "Inspect, generate and store records described in YAML",
		Long: `reflected reads a record description (name, fields, declared Go types)
and works with records of that type through their canonical string form:
print the field table, generate random records, keep them in a pebble store
and edit them in an interactive shell.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			c, err := internal.LoadConfig(path)
			if err != nil {
				return err
			}
			if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
				c.Log.Level = lvl
			}
			cfg = c

			h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: c.LogLevel()})
			slog.SetDefault(slog.New(h))
			slog.Debug("cmd:: config loaded", "path", path, "app", c.AppName)
			return nil
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "YAML config file")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newDescribeCmd(), newRandomCmd(), newDumpCmd(), newShellCmd())
	return root
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func loadModel(path string) (*schemadef.Model, error) {
	d, err := schemadef.Load(path)
	if err != nil {
		return nil, err
	}
	m, err := schemadef.Build(d)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	return m, nil
}

// storeDir picks --store over the configured store.dir.
func storeDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("store"); dir != "" {
		return dir
	}
	return cfg.Store.Dir
}
