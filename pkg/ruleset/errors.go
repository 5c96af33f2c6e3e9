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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Error kinds. Match them with errors.Is; use errors.As with *ConfigError
// to get at the offending field.
var (
	ErrMalformedConfig  = errors.Base("malformed config")
	ErrMissingRules     = errors.Base("missing rules")
	ErrInvalidRulesType = errors.Base("invalid rules type")
	ErrInvalidRule      = errors.Base("invalid rule")
	ErrPatternCompile   = errors.Base("pattern compile error")
)

// ConfigError is returned whenever raw configuration cannot be turned into
// a RuleSet.
type ConfigError struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Field locates the problem, e.g. "rules[2]" or "caseSensitive". May be empty.
	Field string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	} else {
		b.WriteString("config error")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Malformed wraps cause as an ErrMalformedConfig ConfigError. Decoders use
// it so that a file that fails to parse reports the same kind of error as a
// value that is not an object.
func Malformed(field string, cause error) *ConfigError {
	return &ConfigError{Kind: ErrMalformedConfig, Field: field, Err: cause}
}

func configErr(kind error, field string, format string, args ...any) *ConfigError {
	var cause error
	if format != "" {
		cause = errors.Errorf(format, args...)
	}
	return &ConfigError{Kind: kind, Field: field, Err: cause}
}
