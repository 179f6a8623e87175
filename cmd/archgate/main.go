// Package main provides the archgate binary entry point.
// Archgate enforces a layered-architecture convention over a source tree:
// every file is assigned a role from its filename, must live in a
// role-specific directory, and may only reference other files according to
// a fixed directed dependency graph between roles.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/archgate/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "archgate"
)

// exitFail is the gate-failed exit status; exitFatal marks an unusable
// invocation (missing root, bad config). The distinction lets CI tell
// "violations found" apart from "could not run".
const (
	exitFail  = 2
	exitFatal = 1
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(exitFail)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFatal)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Layered-architecture conformance gate",
		Long: `Archgate verifies a source tree against a layered-architecture
convention: a domain (Idea) layer, an orchestration (Praxis) layer, a
side-effect (Poiesis) layer, shared Core contracts, infrastructure
modules, and vendored dependency copies.

It classifies every file by filename prefix, validates its placement,
extracts its references, and evaluates them against a directed role
dependency graph. Violations fail the gate (exit 2); advisory red-flag
heuristics warn without failing.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newVerifyCmd(flags),
		newVerifyOOPCmd(flags),
		newScaffoldCmd(flags),
		newSpecCheckCmd(flags),
		newGateCmd(flags),
		newWatchCmd(flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// setup configures logging and loads the layered configuration.
func setup(flags *globalFlags) (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	switch strings.ToLower(flags.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var cfg *config.Config
	var err error
	if flags.configPath != "" {
		cfg, err = config.LoadFromFile(flags.configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		merged := config.DefaultConfig()
		merged.Merge(cfg)
		cfg = merged
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid configuration: %w", err)
		}
	} else {
		cfg, err = config.NewLoader(logger).Load()
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
	}

	return cfg, logger, nil
}

// resolveRoot picks the scan root: explicit flag, then config, then cwd.
func resolveRoot(flagRoot string, cfg *config.Config) string {
	if flagRoot != "" {
		return flagRoot
	}
	if cfg.Root != "" {
		return cfg.Root
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
