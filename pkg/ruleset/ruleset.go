// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ruleset

import (
	"fmt"
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// DefaultCaseSensitive applies when the config does not say otherwise.
const DefaultCaseSensitive = true

// Mode selects how a pattern is turned into a matcher.
type Mode int

const (
	// ModeRegex uses the pattern as a regular expression (RE2 syntax).
	ModeRegex Mode = iota
	// ModeLiteral escapes every metacharacter so the pattern is a plain substring.
	ModeLiteral
)

func (m Mode) String() string {
	switch m {
	case ModeRegex:
		return "regex"
	case ModeLiteral:
		return "literal"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "regex" or "literal".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "regex":
		return ModeRegex, nil
	case "literal":
		return ModeLiteral, nil
	}
	return 0, errors.Errorf("unknown mode %q (want regex or literal)", s)
}

// Rule is a single pattern/replacement pair.
type Rule struct {
	Pattern     string
	Replacement string

	re *regexp.Regexp
}

// Matcher returns the compiled matcher. It is nil for a Rule that did not
// come out of a RuleSet.
func (r Rule) Matcher() *regexp.Regexp {
	return r.re
}

// RuleSet is an ordered, compiled collection of rules. It is immutable and
// safe for concurrent use.
type RuleSet struct {
	caseSensitive bool
	mode          Mode
	rules         []Rule
	resources     any
}

// New validates and compiles rules into a RuleSet.
func New(caseSensitive bool, mode Mode, rules ...Rule) (*RuleSet, error) {
	rs := &RuleSet{
		caseSensitive: caseSensitive,
		mode:          mode,
		rules:         make([]Rule, len(rules)),
	}
	copy(rs.rules, rules)
	if err := rs.compile(); err != nil {
		return nil, err
	}
	return rs, nil
}

// CaseSensitive reports whether matching respects letter case.
func (rs *RuleSet) CaseSensitive() bool { return rs.caseSensitive }

// Mode reports how patterns are interpreted.
func (rs *RuleSet) Mode() Mode { return rs.mode }

// Resources returns the config's resources value untouched, or nil.
func (rs *RuleSet) Resources() any { return rs.resources }

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Rules returns the rules in application order.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// WithCaseSensitive returns a copy recompiled with the given case sensitivity.
func (rs *RuleSet) WithCaseSensitive(caseSensitive bool) (*RuleSet, error) {
	return rs.with(caseSensitive, rs.mode)
}

// WithMode returns a copy recompiled in the given mode.
func (rs *RuleSet) WithMode(mode Mode) (*RuleSet, error) {
	return rs.with(rs.caseSensitive, mode)
}

func (rs *RuleSet) with(caseSensitive bool, mode Mode) (*RuleSet, error) {
	next, err := New(caseSensitive, mode, rs.rules...)
	if err != nil {
		return nil, err
	}
	next.resources = rs.resources
	return next, nil
}

func (rs *RuleSet) compile() error {
	for i := range rs.rules {
		field := fmt.Sprintf("rules[%d]", i)
		if rs.rules[i].Pattern == "" {
			return configErr(ErrInvalidRule, field, "pattern is empty")
		}
		re, err := compilePattern(rs.rules[i].Pattern, rs.caseSensitive, rs.mode)
		if err != nil {
			return &ConfigError{Kind: ErrPatternCompile, Field: field, Err: err}
		}
		rs.rules[i].re = re
	}
	return nil
}

func compilePattern(pattern string, caseSensitive bool, mode Mode) (*regexp.Regexp, error) {
	expr := pattern
	if mode == ModeLiteral {
		expr = regexp.QuoteMeta(pattern)
	}
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Errorf("compiling %q: %w", pattern, err)
	}
	return re, nil
}
