package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/wozniakpl/obfuscator/cmd/obfuscator/opts"
	"github.com/wozniakpl/obfuscator/pkg/log"
	"github.com/wozniakpl/obfuscator/pkg/operation"
	"github.com/wozniakpl/obfuscator/pkg/status"
)

// NewFileCmd creates the file command
func NewFileCmd(o *opts.RootOpts) *cobra.Command {
	var flags writeFlags

	cmd := &cobra.Command{
		Use:   "file PATH...",
		Short: "Obfuscate files in place",
		Long: `File applies the rules to every PATH and rewrites it in place. File
permissions are kept and writes are atomic.`,
		Example: `  obfuscator file -c rules.yaml notes.txt log.txt
  obfuscator file -r "secret:***" --dry-run app.env`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rs, _, err := o.LoadRuleSet(ctx)
			if err != nil {
				return err
			}

			mgr := status.New(".", zerolog.Ctx(ctx))
			lg := log.FromContext(ctx)

			ops, err := operation.PlanFiles(ctx, operation.Options{
				Rules:     rs,
				StatusMgr: mgr,
				Log:       lg,
				DryRun:    flags.dryRun,
				Backup:    flags.backup,
				Diff:      cmd.OutOrStdout(),
			}, args)
			if err != nil {
				return err
			}

			return runOperations(ctx, cmd, lg, mgr, log.RunOperation{
				Command: "file",
				Root:    ".",
				Rules:   rs.Len(),
				DryRun:  flags.dryRun,
			}, flags.jobs, ops)
		},
	}

	flags.register(cmd)

	return cmd
}
