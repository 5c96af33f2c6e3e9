package text

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/wozniakpl/obfuscator/pkg/ruleset"
	"gitlab.com/tozd/go/errors"
)

// ReplacementResult describes one pass of a RuleSet over some content.
type ReplacementResult struct {
	OriginalContent []byte
	ModifiedContent []byte
	// ReplacementCount is the total number of matches replaced across all rules.
	ReplacementCount int
	// RuleCounts holds the matches replaced by each rule, in rule order.
	RuleCounts  []int
	WasModified bool
}

// Apply runs every rule of rs over input, in order, each rule against the
// output of the previous one. A nil RuleSet returns input unchanged.
func Apply(rs *ruleset.RuleSet, input string) string {
	out, _ := apply(rs, input, false)
	return out
}

func apply(rs *ruleset.RuleSet, input string, count bool) (string, []int) {
	var counts []int
	if count {
		counts = make([]int, rs.Len())
	}

	current := input
	for i, rule := range rs.Rules() {
		re := rule.Matcher()
		if count {
			counts[i] = len(re.FindAllStringIndex(current, -1))
		}
		current = re.ReplaceAllLiteralString(current, rule.Replacement)
	}
	return current, counts
}

// Replacer applies a fixed RuleSet to streamed content.
type Replacer struct {
	rules *ruleset.RuleSet
}

// NewReplacer creates a Replacer for rs.
func NewReplacer(rs *ruleset.RuleSet) *Replacer {
	return &Replacer{rules: rs}
}

// RuleSet returns the rules this Replacer applies.
func (r *Replacer) RuleSet() *ruleset.RuleSet {
	return r.rules
}

// ReplaceText reads all of content and applies the rules to it.
func (r *Replacer) ReplaceText(ctx context.Context, content io.Reader) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	modified, counts := apply(r.rules, string(originalContent), true)

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: []byte(modified),
		RuleCounts:      counts,
		WasModified:     modified != string(originalContent),
	}
	for _, c := range counts {
		result.ReplacementCount += c
	}

	zerolog.Ctx(ctx).Trace().
		Int("rules", r.rules.Len()).
		Int("replacements", result.ReplacementCount).
		Bool("modified", result.WasModified).
		Msg("applied rules")

	return result, nil
}
