// Package cli provides the command-line interface for formbuilder.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// Global flags
var (
	cfgFile string
	verbose bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "formbuilder",
	Short: "Build, validate, and fill dynamic form schemas",
	Long: `formbuilder manages form schemas from the terminal: save them to a
local store, preview them as HTML, fill them interactively, and seed new
forms from an OpenAPI document.

Example:
  formbuilder list                          # List saved forms
  formbuilder save contact.json             # Validate and save a schema file
  formbuilder fill <form-id>                # Fill a form interactively
  formbuilder render <form-id> -o form.html # Render a form as HTML
  formbuilder import "forms/**/*.yaml"      # Import every matching schema file`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: formbuilder.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(openapiCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig reads and validates the effective configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openGateway builds the schema gateway for the configured backend. The
// returned cleanup func closes backend resources and is always non-nil.
func openGateway(cfg *config.Config) (*storage.Gateway, func(), error) {
	var (
		kv      storage.KV
		cleanup = func() {}
	)

	switch cfg.Store.Backend {
	case config.BackendMemory:
		kv = storage.NewMemory()
	case config.BackendSQLite:
		db, err := storage.OpenSQLite(cfg.Store.Path)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open sqlite store: %w", err)
		}
		kv = db
		cleanup = func() { _ = db.Close() }
	default:
		dir, err := storage.NewDir(cfg.Store.Path)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open dir store: %w", err)
		}
		kv = dir
	}

	return storage.NewGateway(kv, storage.WithLogger(newLogger())), cleanup, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	var out io.Writer = os.Stderr
	if quiet {
		out = io.Discard
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
