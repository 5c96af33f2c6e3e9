package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/wozniakpl/obfuscator/cmd/obfuscator/commands"
	"github.com/wozniakpl/obfuscator/cmd/obfuscator/opts"
	"github.com/wozniakpl/obfuscator/pkg/log"
)

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "obfuscator",
		Short: "Replace sensitive text using ordered substitution rules",
		Long: `obfuscator rewrites text with an ordered list of pattern → replacement
rules. Rules come from a config file (.obfuscaterc, JSON, YAML or HCL) or
inline with --rules "pattern:replacement,...".

Rules are applied one after another to the whole text, so a later rule
sees the output of the earlier ones.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o.CaseSensitiveSet = cmd.Flags().Changed("case-sensitive")

			logger := setupLogging(cmd.ErrOrStderr(), o.Debug)
			ctx := logger.WithContext(cmd.Context())
			ctx = log.NewContext(ctx, log.NewWithZerolog(cmd.OutOrStdout(), logger))
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewTextCmd(o),
		commands.NewFileCmd(o),
		commands.NewDirCmd(o),
		commands.NewValidateCmd(o),
		commands.NewVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: .obfuscaterc or .obfuscate.{json,yaml,yml,hcl} in the working directory)")
	cmd.PersistentFlags().StringVarP(&o.InlineRules, "rules", "r", "", `inline literal rules, "pattern:replacement,..."`)
	cmd.PersistentFlags().BoolVar(&o.CaseSensitive, "case-sensitive", true, "match case exactly (overrides the config)")
	cmd.PersistentFlags().BoolVar(&o.Literal, "literal", false, "treat config patterns as plain text instead of regular expressions")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging builds the structured logger for diagnostics
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
