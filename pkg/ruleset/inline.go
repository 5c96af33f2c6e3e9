package ruleset

import "strings"

// ParseInline builds a literal-mode RuleSet from free-text input such as
// "secret:***, projectName:project". Pairs are separated by commas and split
// on their first colon. Malformed pairs are dropped rather than reported, so
// ParseInline never fails; an input with no valid pair yields an empty set.
//
// Inline input is typed by a person, so it is never interpreted as a
// regular expression.
func ParseInline(input string, caseSensitive bool) *RuleSet {
	var rules []Rule
	for _, pair := range strings.Split(input, ",") {
		r, ok := splitPair(pair)
		if !ok {
			continue
		}
		re, err := compilePattern(r.Pattern, caseSensitive, ModeLiteral)
		if err != nil {
			continue
		}
		r.re = re
		rules = append(rules, r)
	}

	return &RuleSet{
		caseSensitive: caseSensitive,
		mode:          ModeLiteral,
		rules:         rules,
	}
}
