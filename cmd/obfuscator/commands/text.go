package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wozniakpl/obfuscator/cmd/obfuscator/opts"
	"github.com/wozniakpl/obfuscator/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewTextCmd creates the text command
func NewTextCmd(o *opts.RootOpts) *cobra.Command {
	var selection string

	cmd := &cobra.Command{
		Use:   "text [TEXT]",
		Short: "Obfuscate a string or standard input",
		Long: `Text applies the rules to TEXT, or to standard input when no argument
is given, and prints the result.

With --selection START:END only that byte range is rewritten; the rest of
the input is printed unchanged. Either end may be left out.`,
		Example: `  obfuscator text -r "alice:user1" "alice met bob"
  echo "alice met bob" | obfuscator text -c .obfuscaterc
  obfuscator text -r "a:b" --selection 0:5 "aaaaaaaaaa"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rs, _, err := o.LoadRuleSet(ctx)
			if err != nil {
				return err
			}

			input, fromArg := "", len(args) == 1
			if fromArg {
				input = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Errorf("reading stdin: %w", err)
				}
				input = string(data)
			}

			output := ""
			if selection != "" {
				sel, err := text.ParseSelection(selection, len(input))
				if err != nil {
					return err
				}
				replaced, err := text.ApplySelection(rs, input, sel)
				if err != nil {
					return err
				}
				output = sel.Splice(input, replaced)
			} else {
				output = text.Apply(rs, input)
			}

			if fromArg {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			} else {
				_, err = fmt.Fprint(cmd.OutOrStdout(), output)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&selection, "selection", "", "only rewrite the byte range START:END")

	return cmd
}
