package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/archgate/report"
	"github.com/c360studio/archgate/verify"
)

func newVerifyCmd(flags *globalFlags) *cobra.Command {
	var (
		root       string
		extensions []string
		reportPath string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "verify [root]",
		Short: "Verify a C-family tree via #include extraction",
		Long: `Verify scans a source tree, classifies every file by its
filename prefix, validates directory placement, extracts #include
directives, and checks each quoted include against the role dependency
graph. Angle-bracket system includes are ignored.

Exit status: 0 when the gate passes (warnings allowed), 2 on any
violation, 1 when the root directory does not exist.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				root = args[0]
			}

			opts := verify.Options{
				Root:     resolveRoot(root, cfg),
				Excludes: cfg.Scan.Excludes,
				Workers:  workers,
				Logger:   logger,
			}
			if len(extensions) > 0 {
				opts.Extensions = extensions
			} else if len(cfg.Scan.Extensions) > 0 {
				opts.Extensions = cfg.Scan.Extensions
			}

			res, err := verify.Run(opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "archgate: %v\n", err)
				os.Exit(exitFatal)
			}

			report.Render(os.Stdout, res)

			if path := firstNonEmpty(reportPath, cfg.Report.Path); path != "" {
				if err := report.New("include", res).Write(path); err != nil {
					logger.Warn("failed to write report", "path", path, "error", err)
				} else {
					logger.Info("report written", "path", path)
				}
			}

			os.Exit(res.ExitCode())
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Root directory to verify (default: config root or cwd)")
	cmd.Flags().StringSliceVar(&extensions, "extensions", nil, "File extensions to scan (default: .c,.h,.cpp,.hpp)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON report to this path")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel file checkers (default: GOMAXPROCS)")

	return cmd
}

func newVerifyOOPCmd(flags *globalFlags) *cobra.Command {
	var (
		root       string
		extensions string
		reportPath string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "verify-oop [root]",
		Short: "Verify an OOP tree via identifier references",
		Long: `Verify-oop checks layered-architecture rules over class-based
source files (.vb, .cs by default). Layer membership comes from the
type name prefix (ida_, prx_, poi_); references are matched as
word-boundary identifier occurrences rather than includes.

A tree with no layer-prefixed files passes as a no-op.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				root = args[0]
			}

			opts := verify.Options{
				Root:     resolveRoot(root, cfg),
				Excludes: cfg.Scan.Excludes,
				Workers:  workers,
				Logger:   logger,
			}
			if extensions != "" {
				opts.Extensions = splitExtensions(extensions)
			} else if len(cfg.Scan.OOPExtensions) > 0 {
				opts.Extensions = cfg.Scan.OOPExtensions
			}

			res, err := verify.RunOOP(opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "archgate: %v\n", err)
				os.Exit(exitFatal)
			}

			report.Render(os.Stdout, res)

			if path := firstNonEmpty(reportPath, cfg.Report.Path); path != "" {
				if err := report.New("identifier", res).Write(path); err != nil {
					logger.Warn("failed to write report", "path", path, "error", err)
				} else {
					logger.Info("report written", "path", path)
				}
			}

			os.Exit(res.ExitCode())
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Root directory to verify (default: config root or cwd)")
	cmd.Flags().StringVar(&extensions, "extensions", "", "Comma-separated extensions (default: .vb,.cs)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON report to this path")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel file checkers (default: GOMAXPROCS)")

	return cmd
}

func splitExtensions(s string) []string {
	var exts []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		exts = append(exts, part)
	}
	return exts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
