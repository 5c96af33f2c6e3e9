package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wozniakpl/obfuscator/cmd/obfuscator/opts"
	"github.com/wozniakpl/obfuscator/pkg/log"
)

// NewValidateCmd creates the validate command
func NewValidateCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the rules and print them in application order",
		Long: `Validate loads the rules exactly as the other commands would, including
flag overrides, and prints them as a table. It fails with the config
error if the rules cannot be loaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rs, source, err := o.LoadRuleSet(ctx)
			if err != nil {
				return err
			}

			user := log.NewUserLogger(ctx, cmd.OutOrStdout())
			if err := user.LogRuleSet(source, rs); err != nil {
				return err
			}
			if o.Literal || o.CaseSensitiveSet {
				user.LogStateChange("flags override the config: the table shows the effective rules")
			}
			if rs.Len() == 0 {
				user.LogValidation(false, "no rules: text passes through unchanged", nil)
				return nil
			}
			user.LogValidation(true, fmt.Sprintf("%d rules are valid", rs.Len()), nil)
			return nil
		},
	}

	return cmd
}
