package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/wozniakpl/obfuscator/cmd/obfuscator/opts"
	"github.com/wozniakpl/obfuscator/pkg/log"
	"github.com/wozniakpl/obfuscator/pkg/operation"
	"github.com/wozniakpl/obfuscator/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewDirCmd creates the dir command
func NewDirCmd(o *opts.RootOpts) *cobra.Command {
	var (
		flags   writeFlags
		include []string
		exclude []string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "dir ROOT",
		Short: "Obfuscate every matching file under a directory",
		Long: `Dir finds files under ROOT and applies the rules to each one.

Files are selected with doublestar globs relative to ROOT. --include and
--exclude replace the include and exclude lists of the config's resources
block; without either, every file is included. Binary files and .bak
backups are skipped.

Files are rewritten in place, or written to the same relative path under
--out.`,
		Example: `  obfuscator dir -c .obfuscaterc ./logs
  obfuscator dir -r "acme:corp" --include "**/*.md" --exclude "vendor/**" .
  obfuscator dir -c rules.hcl --out ./masked --jobs 8 ./src`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root := args[0]

			rs, _, err := o.LoadRuleSet(ctx)
			if err != nil {
				return err
			}

			scope, err := operation.ScopeFromResources(root, rs.Resources())
			if err != nil {
				return errors.Errorf("reading config resources: %w", err)
			}
			if cmd.Flags().Changed("include") {
				scope.Include = include
			}
			if cmd.Flags().Changed("exclude") {
				scope.Exclude = exclude
			}

			base := root
			if out != "" {
				base = out
			}
			mgr := status.New(base, zerolog.Ctx(ctx))
			lg := log.FromContext(ctx)

			ops, err := operation.PlanDir(ctx, operation.Options{
				Rules:     rs,
				StatusMgr: mgr,
				Log:       lg,
				DryRun:    flags.dryRun,
				Backup:    flags.backup,
				Diff:      cmd.OutOrStdout(),
			}, scope, out)
			if err != nil {
				return err
			}

			return runOperations(ctx, cmd, lg, mgr, log.RunOperation{
				Command: "dir",
				Root:    root,
				Output:  out,
				Rules:   rs.Len(),
				DryRun:  flags.dryRun,
			}, flags.jobs, ops)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&include, "include", nil, "glob of files to process, relative to ROOT (repeatable)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "glob of files to leave alone, relative to ROOT (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write results under this directory instead of in place")

	return cmd
}
