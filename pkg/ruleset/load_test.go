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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func pairs(rs *RuleSet) [][2]string {
	out := make([][2]string, 0, rs.Len())
	for _, r := range rs.Rules() {
		out = append(out, [2]string{r.Pattern, r.Replacement})
	}
	return out
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		raw               any
		wantKind          error
		wantField         string
		wantRules         [][2]string
		wantCaseSensitive bool
		wantMode          Mode
	}{
		{
			name: "flat_mapping",
			raw: Map{
				{Key: "secret", Value: "***"},
				{Key: "projectName", Value: "project"},
			},
			wantRules:         [][2]string{{"secret", "***"}, {"projectName", "project"}},
			wantCaseSensitive: true,
		},
		{
			name: "flat_mapping_with_case_flag",
			raw: Map{
				{Key: "caseSensitive", Value: false},
				{Key: "b", Value: "2"},
				{Key: "a", Value: "1"},
			},
			wantRules:         [][2]string{{"b", "2"}, {"a", "1"}},
			wantCaseSensitive: false,
		},
		{
			name: "rules_as_mapping",
			raw: Map{
				{Key: "caseSensitive", Value: false},
				{Key: "rules", Value: Map{
					{Key: "secret", Value: "***"},
					{Key: "projectName", Value: "project"},
				}},
			},
			wantRules:         [][2]string{{"secret", "***"}, {"projectName", "project"}},
			wantCaseSensitive: false,
		},
		{
			name: "rules_as_sequence_of_single_entry_mappings",
			raw: Map{
				{Key: "rules", Value: []any{
					Map{{Key: "a", Value: "b"}},
					Map{{Key: "b", Value: "c"}},
				}},
			},
			wantRules:         [][2]string{{"a", "b"}, {"b", "c"}},
			wantCaseSensitive: true,
		},
		{
			name: "rules_as_colon_strings_are_trimmed_and_split_on_first_colon",
			raw: Map{
				{Key: "rules", Value: []any{" foo : bar ", "url:http://x"}},
			},
			wantRules:         [][2]string{{"foo", "bar"}, {"url", "http://x"}},
			wantCaseSensitive: true,
		},
		{
			name: "invalid_colon_strings_are_dropped",
			raw: Map{
				{Key: "rules", Value: []any{"nocolon", ":bar", "foo:", "  :  ", "ok:yes"}},
			},
			wantRules:         [][2]string{{"ok", "yes"}},
			wantCaseSensitive: true,
		},
		{
			name: "multi_entry_mapping_in_sequence_keeps_order",
			raw: Map{
				{Key: "rules", Value: []any{
					Map{{Key: "z", Value: "1"}, {Key: "y", Value: "2"}},
				}},
			},
			wantRules:         [][2]string{{"z", "1"}, {"y", "2"}},
			wantCaseSensitive: true,
		},
		{
			name: "duplicate_patterns_are_kept",
			raw: Map{
				{Key: "rules", Value: []any{"a:b", "a:c"}},
			},
			wantRules:         [][2]string{{"a", "b"}, {"a", "c"}},
			wantCaseSensitive: true,
		},
		{
			name: "empty_replacement_is_allowed_in_mappings",
			raw: Map{
				{Key: "rules", Value: Map{{Key: "delete-me", Value: ""}}},
			},
			wantRules:         [][2]string{{"delete-me", ""}},
			wantCaseSensitive: true,
		},
		{
			name: "scalar_replacements_are_stringified",
			raw: Map{
				{Key: "rules", Value: Map{
					{Key: "n", Value: json.Number("42")},
					{Key: "f", Value: 1.5},
					{Key: "i", Value: 7},
					{Key: "t", Value: true},
				}},
			},
			wantRules:         [][2]string{{"n", "42"}, {"f", "1.5"}, {"i", "7"}, {"t", "true"}},
			wantCaseSensitive: true,
		},
		{
			name: "go_map_is_sorted",
			raw: map[string]any{
				"rules": map[string]any{"b": "2", "a": "1"},
			},
			wantRules:         [][2]string{{"a", "1"}, {"b", "2"}},
			wantCaseSensitive: true,
		},
		{
			name: "case_sensitive_as_string",
			raw: Map{
				{Key: "case_sensitive", Value: "false"},
				{Key: "rules", Value: []any{"a:b"}},
			},
			wantRules:         [][2]string{{"a", "b"}},
			wantCaseSensitive: false,
		},
		{
			name: "literal_mode",
			raw: Map{
				{Key: "mode", Value: "literal"},
				{Key: "rules", Value: []any{"a.b:x"}},
			},
			wantRules:         [][2]string{{"a.b", "x"}},
			wantCaseSensitive: true,
			wantMode:          ModeLiteral,
		},
		{
			name:     "not_an_object",
			raw:      "just a string",
			wantKind: ErrMalformedConfig,
		},
		{
			name:     "nil",
			raw:      nil,
			wantKind: ErrMalformedConfig,
		},
		{
			name:     "list_at_top_level",
			raw:      []any{"a:b"},
			wantKind: ErrMalformedConfig,
		},
		{
			name:     "empty_object",
			raw:      Map{},
			wantKind: ErrMissingRules,
		},
		{
			name:     "only_reserved_keys",
			raw:      Map{{Key: "caseSensitive", Value: true}},
			wantKind: ErrMissingRules,
		},
		{
			name:      "rules_null",
			raw:       Map{{Key: "rules", Value: nil}},
			wantKind:  ErrMissingRules,
			wantField: "rules",
		},
		{
			name:      "rules_string",
			raw:       Map{{Key: "rules", Value: "not-an-array-or-map"}},
			wantKind:  ErrInvalidRulesType,
			wantField: "rules",
		},
		{
			name:      "rules_number",
			raw:       Map{{Key: "rules", Value: 3}},
			wantKind:  ErrInvalidRulesType,
			wantField: "rules",
		},
		{
			name:      "bad_case_sensitive",
			raw:       Map{{Key: "caseSensitive", Value: "sometimes"}, {Key: "a", Value: "b"}},
			wantKind:  ErrMalformedConfig,
			wantField: "caseSensitive",
		},
		{
			name:      "bad_mode",
			raw:       Map{{Key: "mode", Value: "glob"}, {Key: "a", Value: "b"}},
			wantKind:  ErrMalformedConfig,
			wantField: "mode",
		},
		{
			name:      "null_replacement",
			raw:       Map{{Key: "rules", Value: Map{{Key: "a", Value: nil}}}},
			wantKind:  ErrInvalidRule,
			wantField: "rules.a",
		},
		{
			name:      "nested_replacement",
			raw:       Map{{Key: "a", Value: Map{{Key: "x", Value: "y"}}}},
			wantKind:  ErrInvalidRule,
			wantField: "a",
		},
		{
			name:      "empty_pattern_key",
			raw:       Map{{Key: "rules", Value: []any{Map{{Key: "", Value: "x"}}}}},
			wantKind:  ErrInvalidRule,
			wantField: "rules[0]",
		},
		{
			name:      "number_in_sequence",
			raw:       Map{{Key: "rules", Value: []any{"a:b", 12}}},
			wantKind:  ErrInvalidRule,
			wantField: "rules[1]",
		},
		{
			name:      "bad_regex",
			raw:       Map{{Key: "rules", Value: []any{"ok:fine", Map{{Key: "(unclosed", Value: "x"}}}}},
			wantKind:  ErrPatternCompile,
			wantField: "rules[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := Load(tt.raw)

			if tt.wantKind != nil {
				require.Error(t, err)
				assert.Nil(t, rs)
				assert.True(t, errors.Is(err, tt.wantKind), "want %v, got %v", tt.wantKind, err)

				var cfgErr *ConfigError
				require.True(t, errors.As(err, &cfgErr))
				if tt.wantField != "" {
					assert.Equal(t, tt.wantField, cfgErr.Field)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRules, pairs(rs))
			assert.Equal(t, tt.wantCaseSensitive, rs.CaseSensitive())
			assert.Equal(t, tt.wantMode, rs.Mode())
		})
	}
}

func TestLoad_ResourcesPassThrough(t *testing.T) {
	resources := Map{{Key: "include", Value: []any{"**/*.go"}}}
	rs, err := Load(Map{
		{Key: "resources", Value: resources},
		{Key: "rules", Value: []any{"a:b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, resources, rs.Resources())

	rs, err = Load(Map{{Key: "a", Value: "b"}})
	require.NoError(t, err)
	assert.Nil(t, rs.Resources())
	assert.Equal(t, [][2]string{{"a", "b"}}, pairs(rs), "resources must not become a rule")
}

func TestConfigError_Message(t *testing.T) {
	_, err := Load(Map{{Key: "rules", Value: "nope"}})
	require.Error(t, err)
	assert.Equal(t, "rules: invalid rules type: got a string, want a list or an object", err.Error())

	err = Malformed("", errors.New("unexpected EOF"))
	assert.Equal(t, "malformed config: unexpected EOF", err.Error())
	assert.True(t, errors.Is(err, ErrMalformedConfig))
}
