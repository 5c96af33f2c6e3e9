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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/wozniakpl/obfuscator/pkg/ruleset"
	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func (p *JSONParser) Name() string { return "json" }

func (p *JSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(filename)), ".json")
}

// Parse walks the token stream rather than unmarshalling into a map so
// that object keys keep their order.
func (p *JSONParser) Parse(ctx context.Context, data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	v, err := decodeJSONValue(decoder)
	if err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}

	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, errors.Errorf("parsing JSON: %w", err)
	}

	return v, nil
}

func decodeJSONValue(decoder *json.Decoder) (any, error) {
	tok, err := decoder.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		m := ruleset.Map{}
		for decoder.More() {
			keyTok, err := decoder.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, errors.Errorf("object key is %T, want string", keyTok)
			}
			v, err := decodeJSONValue(decoder)
			if err != nil {
				return nil, errors.Errorf("%s: %w", key, err)
			}
			m = append(m, ruleset.Entry{Key: key, Value: v})
		}
		if _, err := decoder.Token(); err != nil {
			return nil, err
		}
		return m, nil
	case '[':
		list := []any{}
		for decoder.More() {
			v, err := decodeJSONValue(decoder)
			if err != nil {
				return nil, errors.Errorf("[%d]: %w", len(list), err)
			}
			list = append(list, v)
		}
		if _, err := decoder.Token(); err != nil {
			return nil, err
		}
		return list, nil
	}

	return nil, errors.Errorf("unexpected delimiter %q", delim)
}
