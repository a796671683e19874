package config

import (
	"errors"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// ConfigError reports configuration key which value cannot be used.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bad configuration value for %q: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Settings holds free-form configuration namespace as is, preserving key
// order. Interpretation is left to the consumer of the namespace.
type Settings struct {
	node *yaml.Node
}

func (s *Settings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode && value.Tag != "!!null" {
		return fmt.Errorf("line %d: settings must be a mapping", value.Line)
	}
	n := *value
	s.node = &n
	return nil
}

func (s Settings) MarshalYAML() (any, error) {
	if s.node == nil {
		return map[string]any{}, nil
	}
	return s.node, nil
}

// Keys returns namespace keys in the order they were written.
func (s Settings) Keys() []string {
	if s.node == nil || s.node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(s.node.Content)/2)
	for i := 0; i+1 < len(s.node.Content); i += 2 {
		keys = append(keys, s.node.Content[i].Value)
	}
	return keys
}

// DecodeInto decodes namespace into out key by key so failures could be
// attributed. Keys out does not know about are ignored, keys not present
// leave out untouched. Reported keys are prefixed with ns.
func (s Settings) DecodeInto(ns string, out any) error {
	if s.node == nil || s.node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(s.node.Content); i += 2 {
		k, v := s.node.Content[i], s.node.Content[i+1]
		single := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{k, v}}
		if err := single.Decode(out); err != nil {
			var te *yaml.TypeError
			if errors.As(err, &te) {
				return &ConfigError{Key: ns + "." + k.Value, Err: err}
			}
			return fmt.Errorf("unable to decode %s.%s: %w", ns, k.Value, err)
		}
	}
	return nil
}
