package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/archgate/finding"
	"github.com/c360studio/archgate/specdoc"
)

func newSpecCheckCmd(flags *globalFlags) *cobra.Command {
	var (
		repoRoot string
		specsDir string
	)

	cmd := &cobra.Command{
		Use:   "spec-check [repo-root]",
		Short: "Check spec document hygiene",
		Long: `Spec-check validates the markdown documents under the specs
directory: file naming, mojibake-free encoding, numbered headings that
match the filename, and README cross-references that point at existing
spec files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				repoRoot = args[0]
			}
			if specsDir == "" {
				specsDir = cfg.Gate.SpecsDir
			}

			checker := specdoc.NewChecker(resolveRoot(repoRoot, cfg), specsDir, logger)
			findings, err := checker.Check()
			if err != nil {
				fmt.Fprintf(os.Stderr, "archgate: %v\n", err)
				os.Exit(exitFatal)
			}

			for _, f := range findings {
				fmt.Printf("  %s:%d [%s] %s\n", f.File, f.Line, f.Rule, f.Message)
			}
			errs, warns := finding.Count(findings)
			if errs > 0 {
				fmt.Printf("archgate: spec check FAILED (%d error(s), %d warning(s))\n", errs, warns)
				os.Exit(exitFail)
			}
			fmt.Printf("archgate: spec check PASSED (%d warning(s))\n", warns)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoRoot, "root", "", "Repository root (default: config root or cwd)")
	cmd.Flags().StringVar(&specsDir, "specs-dir", "", "Specs directory relative to the root (default: specs)")

	return cmd
}
