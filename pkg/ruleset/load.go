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
	"strconv"
	"strings"
)

// Reserved top-level keys. Anything else at the top level of a config
// without a rules key is a flat pattern→replacement mapping.
const (
	KeyRules            = "rules"
	KeyCaseSensitive    = "caseSensitive"
	KeyCaseSensitiveAlt = "case_sensitive"
	KeyMode             = "mode"
	KeyResources        = "resources"
)

func reserved(key string) bool {
	switch key {
	case KeyRules, KeyCaseSensitive, KeyCaseSensitiveAlt, KeyMode, KeyResources:
		return true
	}
	return false
}

// Load turns an already-decoded config value into a compiled RuleSet.
//
// Accepted shapes are a flat mapping of pattern to replacement, or an
// object with a rules field holding either a mapping or a sequence of
// single-entry mappings and "pattern:replacement" strings. Failures are
// always *ConfigError.
func Load(raw any) (*RuleSet, error) {
	top, ok := asMapping(raw)
	if !ok {
		return nil, configErr(ErrMalformedConfig, "", "top-level value is %s, want an object", describe(raw))
	}

	caseSensitive, err := loadCaseSensitive(top)
	if err != nil {
		return nil, err
	}

	mode := ModeRegex
	if v, ok := top.Get(KeyMode); ok && v != nil {
		s, isString := v.(string)
		if !isString {
			return nil, configErr(ErrMalformedConfig, KeyMode, "got %s, want a string", describe(v))
		}
		if mode, err = ParseMode(s); err != nil {
			return nil, &ConfigError{Kind: ErrMalformedConfig, Field: KeyMode, Err: err}
		}
	}

	var rules []Rule
	if v, ok := top.Get(KeyRules); ok {
		rules, err = loadRules(v)
	} else {
		rules, err = loadFlat(top)
	}
	if err != nil {
		return nil, err
	}

	rs, err := New(caseSensitive, mode, rules...)
	if err != nil {
		return nil, err
	}
	rs.resources, _ = top.Get(KeyResources)
	return rs, nil
}

func loadCaseSensitive(top Map) (bool, error) {
	for _, key := range []string{KeyCaseSensitive, KeyCaseSensitiveAlt} {
		v, ok := top.Get(key)
		if !ok || v == nil {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err != nil {
				return false, configErr(ErrMalformedConfig, key, "got %q, want a boolean", b)
			}
			return parsed, nil
		default:
			return false, configErr(ErrMalformedConfig, key, "got %s, want a boolean", describe(v))
		}
	}
	return DefaultCaseSensitive, nil
}

func loadFlat(top Map) ([]Rule, error) {
	var rules []Rule
	for _, e := range top {
		if reserved(e.Key) {
			continue
		}
		r, err := ruleFromPair(e.Key, e.Value, e.Key)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	if len(rules) == 0 {
		return nil, configErr(ErrMissingRules, "", "no rules field and no pattern mappings")
	}
	return rules, nil
}

func loadRules(v any) ([]Rule, error) {
	if v == nil {
		return nil, configErr(ErrMissingRules, KeyRules, "rules is null")
	}

	if m, ok := asMapping(v); ok {
		rules := make([]Rule, 0, len(m))
		for _, e := range m {
			r, err := ruleFromPair(e.Key, e.Value, fmt.Sprintf("%s.%s", KeyRules, e.Key))
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
		return rules, nil
	}

	seq, ok := asSequence(v)
	if !ok {
		return nil, configErr(ErrInvalidRulesType, KeyRules, "got %s, want a list or an object", describe(v))
	}

	rules := make([]Rule, 0, len(seq))
	for i, item := range seq {
		field := fmt.Sprintf("%s[%d]", KeyRules, i)
		if s, ok := item.(string); ok {
			if r, ok := splitPair(s); ok {
				rules = append(rules, r)
			}
			continue
		}
		m, ok := asMapping(item)
		if !ok {
			return nil, configErr(ErrInvalidRule, field, "got %s, want an object or a \"pattern:replacement\" string", describe(item))
		}
		for _, e := range m {
			r, err := ruleFromPair(e.Key, e.Value, field)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
	}
	return rules, nil
}

func ruleFromPair(pattern string, value any, field string) (Rule, error) {
	if pattern == "" {
		return Rule{}, configErr(ErrInvalidRule, field, "pattern is empty")
	}
	if value == nil {
		return Rule{}, configErr(ErrInvalidRule, field, "replacement for %q is null", pattern)
	}
	replacement, ok := scalarString(value)
	if !ok {
		return Rule{}, configErr(ErrInvalidRule, field, "replacement for %q is %s, want a string", pattern, describe(value))
	}
	return Rule{Pattern: pattern, Replacement: replacement}, nil
}

// splitPair parses "pattern:replacement" on the first colon. Either side
// empty after trimming means the entry is dropped.
func splitPair(s string) (Rule, bool) {
	pattern, replacement, found := strings.Cut(s, ":")
	if !found {
		return Rule{}, false
	}
	pattern = strings.TrimSpace(pattern)
	replacement = strings.TrimSpace(replacement)
	if pattern == "" || replacement == "" {
		return Rule{}, false
	}
	return Rule{Pattern: pattern, Replacement: replacement}, true
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case Map, map[string]any, map[string]string:
		return "an object"
	case []any, []string, []Map:
		return "a list"
	}
	if _, ok := scalarString(v); ok {
		return "a number"
	}
	return fmt.Sprintf("%T", v)
}
