package opts

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/wozniakpl/obfuscator/pkg/config"
	"github.com/wozniakpl/obfuscator/pkg/ruleset"
	"gitlab.com/tozd/go/errors"
)

// InlineSource names inline rules in logs and tables.
const InlineSource = "--rules"

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile    string
	InlineRules   string
	CaseSensitive bool
	Literal       bool
	Debug         bool

	// CaseSensitiveSet records whether --case-sensitive was given, so an
	// unset flag does not override the config
	CaseSensitiveSet bool
}

// LoadRuleSet builds the active rule set and says where it came from.
//
// Inline rules win over a config file and are always literal. Otherwise the
// config named by --config, or the first default config found in the
// working directory, is loaded strictly. Flags then override case
// sensitivity and mode.
func (o *RootOpts) LoadRuleSet(ctx context.Context) (*ruleset.RuleSet, string, error) {
	logger := zerolog.Ctx(ctx)

	if o.InlineRules != "" {
		caseSensitive := ruleset.DefaultCaseSensitive
		if o.CaseSensitiveSet {
			caseSensitive = o.CaseSensitive
		}
		rs := ruleset.ParseInline(o.InlineRules, caseSensitive)
		if rs.Len() == 0 {
			logger.Warn().Str("rules", o.InlineRules).Msg("no usable \"pattern:replacement\" pairs, text passes through unchanged")
		}
		logger.Debug().Int("rules", rs.Len()).Msg("using inline rules")
		return rs, InlineSource, nil
	}

	path := o.ConfigFile
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return nil, "", err
		}
		if found == "" {
			return nil, "", errors.Errorf("no rules: pass --rules or --config, or add a %s file", config.RCFilename)
		}
		path = found
	}

	rs, err := config.Load(ctx, path)
	if err != nil {
		return nil, "", err
	}

	if o.CaseSensitiveSet && o.CaseSensitive != rs.CaseSensitive() {
		if rs, err = rs.WithCaseSensitive(o.CaseSensitive); err != nil {
			return nil, "", errors.Errorf("applying --case-sensitive: %w", err)
		}
	}
	if o.Literal && rs.Mode() != ruleset.ModeLiteral {
		if rs, err = rs.WithMode(ruleset.ModeLiteral); err != nil {
			return nil, "", errors.Errorf("applying --literal: %w", err)
		}
	}

	return rs, path, nil
}
