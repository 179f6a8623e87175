package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/archgate/report"
	"github.com/c360studio/archgate/verify"
	"github.com/c360studio/archgate/watch"
)

func newWatchCmd(flags *globalFlags) *cobra.Command {
	var (
		root string
		oop  bool
	)

	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Re-verify on file changes",
		Long: `Watch monitors the source tree and re-runs verification after
changes settle. Events are debounced so a burst of writes (editor save,
git checkout) triggers a single run. Press Ctrl-C to stop.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				root = args[0]
			}

			watchRoot := resolveRoot(root, cfg)
			extensions := cfg.Scan.Extensions
			if oop {
				extensions = cfg.Scan.OOPExtensions
			}

			lastExit := 0
			runOnce := func() {
				opts := verify.Options{
					Root:       watchRoot,
					Extensions: extensions,
					Excludes:   cfg.Scan.Excludes,
					Logger:     logger,
				}
				var res *verify.Result
				var runErr error
				if oop {
					res, runErr = verify.RunOOP(opts)
				} else {
					res, runErr = verify.Run(opts)
				}
				if runErr != nil {
					logger.Error("verification failed", "error", runErr)
					lastExit = exitFatal
					return
				}
				report.Render(os.Stdout, res)
				lastExit = res.ExitCode()
			}

			w, err := watch.New(watchRoot, extensions, cfg.Watch.Debounce, logger)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("archgate: watching %s (Ctrl-C to stop)\n", watchRoot)
			runOnce()
			code, err := watchExit(w.Run(ctx, runOnce), lastExit)
			if err != nil {
				return err
			}
			fmt.Println("archgate: watch stopped")
			os.Exit(code)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Root directory to watch (default: config root or cwd)")
	cmd.Flags().BoolVar(&oop, "oop", false, "Run the identifier-reference verifier instead of the include verifier")

	return cmd
}

// watchExit maps the watcher's terminal error to the exit contract:
// a canceled context (Ctrl-C, SIGTERM) is a clean stop that carries the
// last run's verdict; anything else stays an error for RunE.
func watchExit(err error, lastCode int) (int, error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return lastCode, nil
	}
	return exitFatal, err
}
