package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/wozniakpl/obfuscator/pkg/ruleset"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func (p *YAMLParser) Name() string { return "yaml" }

func (p *YAMLParser) CanParse(filename string) bool {
	filename = strings.ToLower(strings.TrimSpace(filename))
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// Parse decodes into a yaml.Node first; mapping nodes keep their key order,
// a plain map would not.
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (any, error) {
	var doc yaml.Node
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New("parsing YAML: empty document")
		}
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	v, err := convertYAMLNode(&doc)
	if err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return v, nil
}

func convertYAMLNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return convertYAMLNode(node.Content[0])

	case yaml.MappingNode:
		m := make(ruleset.Map, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, errors.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
			}
			v, err := convertYAMLNode(valueNode)
			if err != nil {
				return nil, err
			}
			m = append(m, ruleset.Entry{Key: keyNode.Value, Value: v})
		}
		return m, nil

	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := convertYAMLNode(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil

	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, errors.Errorf("line %d: dangling alias", node.Line)
		}
		return convertYAMLNode(node.Alias)

	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, errors.Errorf("line %d: %w", node.Line, err)
		}
		return scalarSource(node, v), nil
	}

	return nil, errors.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
}

// scalarSource keeps numbers and booleans as written, so "1.50" or "0x10"
// reach the rule set unchanged, the same as json.Number does for JSON.
func scalarSource(node *yaml.Node, decoded any) any {
	switch node.ShortTag() {
	case "!!int", "!!float":
		return json.Number(node.Value)
	case "!!bool":
		if b, ok := decoded.(bool); ok && strconv.FormatBool(b) != node.Value {
			return node.Value
		}
	}
	return decoded
}
