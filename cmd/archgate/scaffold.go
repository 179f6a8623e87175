package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/archgate/scaffold"
)

func newScaffoldCmd(flags *globalFlags) *cobra.Command {
	var (
		root     string
		features string
	)

	cmd := &cobra.Command{
		Use:   "scaffold [root]",
		Short: "Create the managed directory layout",
		Long: `Scaffold creates the managed directory tree (infra, deps,
project) plus the core contract header and the project config header.
Existing files are never overwritten, so re-running is safe.

With --features, per-feature stub files (ida_, prx_, poi_ header and
source pairs) are generated under project/features/<name>/.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				root = args[0]
			}

			names, err := scaffold.NormalizeFeatureNames(features)
			if err != nil {
				return err
			}

			gen := scaffold.NewGenerator(logger)
			summary, err := gen.Create(resolveRoot(root, cfg), names)
			if err != nil {
				return err
			}

			fmt.Printf("archgate: scaffold complete under %s\n", summary.Root)
			fmt.Printf("  directories created: %d\n", summary.DirsCreated)
			fmt.Printf("  files created:       %d\n", summary.FilesCreated)
			if summary.FilesSkipped > 0 {
				fmt.Printf("  files kept as-is:    %d\n", summary.FilesSkipped)
			}
			for _, f := range summary.Features {
				fmt.Printf("  feature: %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Root directory to scaffold (default: config root or cwd)")
	cmd.Flags().StringVar(&features, "features", "", "Comma-separated feature names to stub out")

	return cmd
}
