package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/archgate/gate"
)

func newGateCmd(flags *globalFlags) *cobra.Command {
	var (
		repoRoot string
		skipSpec bool
		skipCode bool
		skipOOP  bool
	)

	cmd := &cobra.Command{
		Use:   "gate [repo-root]",
		Short: "Run the full conformance gate",
		Long: `Gate runs all verification stages in sequence (spec document
hygiene, code conformance, then the identifier binding when OOP sources
are configured) and writes a combined JSON report.
Stages can be skipped individually; a stage whose inputs are missing is
recorded as skipped, not failed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				repoRoot = args[0]
			}
			if skipSpec {
				cfg.Gate.SkipSpec = true
			}
			if skipCode {
				cfg.Gate.SkipCode = true
			}
			if skipOOP {
				cfg.Gate.SkipOOP = true
			}

			rep, err := gate.NewRunner(cfg, logger).Run(resolveRoot(repoRoot, cfg))
			if err != nil {
				fmt.Fprintf(os.Stderr, "archgate: %v\n", err)
				os.Exit(exitFatal)
			}

			for _, s := range rep.Stages {
				line := fmt.Sprintf("  stage %-12s %s", s.Name, s.Status)
				if s.ErrorCount > 0 {
					line += fmt.Sprintf(" (%d error(s))", s.ErrorCount)
				}
				if s.Note != "" {
					line += ": " + s.Note
				}
				fmt.Println(line)
			}
			if rep.GatePassed {
				fmt.Println("archgate: GATE PASSED")
				return nil
			}
			fmt.Println("archgate: GATE FAILED")
			os.Exit(exitFail)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoRoot, "root", "", "Repository root (default: config root or cwd)")
	cmd.Flags().BoolVar(&skipSpec, "skip-spec", false, "Skip the spec hygiene stage")
	cmd.Flags().BoolVar(&skipCode, "skip-code", false, "Skip the code conformance stage")
	cmd.Flags().BoolVar(&skipOOP, "skip-oop", false, "Skip the identifier-binding stage")

	return cmd
}
