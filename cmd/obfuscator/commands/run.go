package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/wozniakpl/obfuscator/pkg/log"
	"github.com/wozniakpl/obfuscator/pkg/operation"
	"github.com/wozniakpl/obfuscator/pkg/status"
)

// writeFlags are shared by the commands that write files
type writeFlags struct {
	dryRun bool
	backup bool
	jobs   int
}

func (w *writeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&w.dryRun, "dry-run", false, "print unified diffs instead of writing files")
	cmd.Flags().BoolVar(&w.backup, "backup", false, "keep a .bak copy of every file that is rewritten")
	cmd.Flags().IntVarP(&w.jobs, "jobs", "j", 1, "number of files processed at once")
}

// runOperations executes ops, printing per-file lines and a final summary
func runOperations(ctx context.Context, cmd *cobra.Command, lg *log.Logger, mgr *status.Manager, run log.RunOperation, jobs int, ops []operation.Operation) error {
	out := cmd.OutOrStdout()

	lg.StartRun(ctx, run)
	err := operation.NewRunner(zerolog.Ctx(ctx), jobs, mgr).Run(ctx, ops...)
	summary := lg.EndRun(ctx)

	files, listErr := mgr.ListFiles(ctx)
	if listErr == nil {
		fmt.Fprintln(out, status.FormatSummary(files))
	}

	switch {
	case err != nil:
		lg.Errorf("%s stopped: %d of %d files failed", run.Command, summary.Failed, len(ops))
	case summary.Files == 0:
		lg.Warningf("no files matched under %s", run.Root)
	case run.DryRun:
		lg.Warningf("dry run: %d files would change, nothing was written", summary.Modified)
	default:
		lg.Successf("%d files written with %d replacements", summary.Modified, summary.Replacements)
	}

	return err
}
