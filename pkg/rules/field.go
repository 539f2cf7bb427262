package rules

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// FieldRule describes one field of an array-pattern element. It is either
// Simple, a bare kind string, or Complex.
type FieldRule struct {
	Simple  string
	Complex *ComplexFieldRule
}

// ComplexFieldRule resolves a field either by looking up a templated key in
// the gathered properties (Key) or by taking a capture group of the key
// pattern match (Group). Key wins when both are set.
type ComplexFieldRule struct {
	Key       string `koanf:"key" json:"key,omitempty" yaml:"key,omitempty"`
	Group     *int   `koanf:"group" json:"group,omitempty" yaml:"group,omitempty"`
	Transform string `koanf:"transform" json:"transform,omitempty" yaml:"transform,omitempty"`
	Optional  bool   `koanf:"optional" json:"optional,omitempty" yaml:"optional,omitempty"`
}

// SimpleField returns a simple field rule of the given kind
func SimpleField(kind string) FieldRule {
	return FieldRule{Simple: kind}
}

// KeyField returns a complex rule that looks up a templated key
func KeyField(key, transform string, optional bool) FieldRule {
	return FieldRule{Complex: &ComplexFieldRule{Key: key, Transform: transform, Optional: optional}}
}

// GroupField returns a complex rule that reads a key pattern capture group
func GroupField(group int, transform string) FieldRule {
	return FieldRule{Complex: &ComplexFieldRule{Group: IntPtr(group), Transform: transform}}
}

// IsSimple reports whether the rule is the bare string form
func (f FieldRule) IsSimple() bool {
	return f.Complex == nil
}

func (f FieldRule) String() string {
	if f.IsSimple() {
		return f.Simple
	}
	c := f.Complex
	switch {
	case c.Key != "":
		return fmt.Sprintf("key=%s", c.Key)
	case c.Group != nil:
		return fmt.Sprintf("group=%d", *c.Group)
	default:
		return "{}"
	}
}

// MarshalJSON writes the simple form as a string and the complex form as an object
func (f FieldRule) MarshalJSON() ([]byte, error) {
	if f.IsSimple() {
		return json.Marshal(f.Simple)
	}
	return json.Marshal(f.Complex)
}

// UnmarshalJSON accepts either a string or an object
func (f *FieldRule) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FieldRule{Simple: s}
		return nil
	}
	var c ComplexFieldRule
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("field rule must be a string or an object: %w", err)
	}
	*f = FieldRule{Complex: &c}
	return nil
}

// MarshalYAML mirrors MarshalJSON
func (f FieldRule) MarshalYAML() (interface{}, error) {
	if f.IsSimple() {
		return f.Simple, nil
	}
	return f.Complex, nil
}

// UnmarshalYAML accepts either a scalar or a mapping node
func (f *FieldRule) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*f = FieldRule{Simple: node.Value}
		return nil
	case yaml.MappingNode:
		var c ComplexFieldRule
		if err := node.Decode(&c); err != nil {
			return err
		}
		*f = FieldRule{Complex: &c}
		return nil
	default:
		return fmt.Errorf("line %d: field rule must be a string or a mapping", node.Line)
	}
}

var fieldRuleType = reflect.TypeOf(FieldRule{})

// FieldRuleHookFunc is a mapstructure decode hook turning strings into simple
// field rules and maps into complex ones
func FieldRuleHookFunc(tagName string) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != fieldRuleType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return FieldRule{Simple: v}, nil
		case map[string]interface{}:
			var c ComplexFieldRule
			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				Result:           &c,
				TagName:          tagName,
				WeaklyTypedInput: true,
				ErrorUnused:      true,
			})
			if err != nil {
				return nil, err
			}
			if err := decoder.Decode(v); err != nil {
				return nil, fmt.Errorf("invalid field rule: %w", err)
			}
			return FieldRule{Complex: &c}, nil
		default:
			return data, nil
		}
	}
}
