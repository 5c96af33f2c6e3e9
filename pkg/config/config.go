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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wozniakpl/obfuscator/pkg/ruleset"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser decodes one config format into the ordered raw value that
// ruleset.Load accepts (ruleset.Map, []any and scalars)
type Parser interface {
	// 📝 Parse decodes data
	Parse(ctx context.Context, data []byte) (any, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool

	// 🏷️ Name names the format for logs and errors
	Name() string
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// RCFilename is the extension-less config file name. Its format is sniffed.
const RCFilename = ".obfuscaterc"

// DefaultFilenames are the config files Find looks for, in order.
var DefaultFilenames = []string{
	RCFilename,
	".obfuscate.json",
	".obfuscate.yaml",
	".obfuscate.yml",
	".obfuscate.hcl",
}

func init() {
	Register(&JSONParser{})
	Register(&YAMLParser{})
	Register(&HCLParser{})
}

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 Load reads the config file at path and builds its RuleSet
func Load(ctx context.Context, path string) (*ruleset.RuleSet, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	rs, err := Parse(ctx, path, data)
	if err != nil {
		return nil, errors.Errorf("loading %s: %w", path, err)
	}

	logger.Debug().
		Str("path", path).
		Int("rules", rs.Len()).
		Bool("case_sensitive", rs.CaseSensitive()).
		Stringer("mode", rs.Mode()).
		Msg("configuration loaded")

	return rs, nil
}

// 📦 Parse decodes data, picking the format from filename, and builds its RuleSet
func Parse(ctx context.Context, filename string, data []byte) (*ruleset.RuleSet, error) {
	raw, err := Decode(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	return ruleset.Load(raw)
}

// 🔍 Decode decodes data into the raw value without validating it.
//
// Syntax errors come back as *ruleset.ConfigError of kind
// ruleset.ErrMalformedConfig, the same as a value that is not an object.
func Decode(ctx context.Context, filename string, data []byte) (any, error) {
	if filepath.Base(filename) == RCFilename || strings.EqualFold(filepath.Ext(filename), ".obfuscaterc") {
		return decodeRC(ctx, data)
	}

	p := GetParser(filename)
	if p == nil {
		return nil, ruleset.Malformed("", errors.Errorf("no parser found for file: %s", filename))
	}

	raw, err := p.Parse(ctx, data)
	if err != nil {
		return nil, ruleset.Malformed("", err)
	}
	return raw, nil
}

// decodeRC tries every registered format and keeps the first one that
// yields an object.
func decodeRC(ctx context.Context, data []byte) (any, error) {
	logger := zerolog.Ctx(ctx)

	var attempts []string
	for _, p := range parsers {
		raw, err := p.Parse(ctx, data)
		if err != nil {
			logger.Trace().Str("format", p.Name()).Err(err).Msg("rc file is not this format")
			attempts = append(attempts, p.Name()+": "+err.Error())
			continue
		}
		if _, ok := raw.(ruleset.Map); ok {
			logger.Debug().Str("format", p.Name()).Msg("detected rc file format")
			return raw, nil
		}
		attempts = append(attempts, p.Name()+": not an object")
	}
	return nil, ruleset.Malformed(RCFilename, errors.Errorf("no format matched (%s)", strings.Join(attempts, "; ")))
}

// 🔎 Find returns the first of DefaultFilenames present in dir, or "" if
// there is none
func Find(dir string) (string, error) {
	for _, name := range DefaultFilenames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Errorf("checking %s: %w", path, err)
		}
	}
	return "", nil
}
