// Package options implements the configuration record handed to a stage: an ordered mapping from option names to
// values. The order of the record is significant since it ends up as the order of command-line flags.
package options

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rwx-research/spawn-mocha/internal/errors"
)

// Option is a single key/value pair of a record.
//
// Value is one of: nil, bool, string, an integer or floating point number, a []any of those scalars, or a nested
// Options record.
type Option struct {
	Key   string
	Value any
}

// Options is an ordered configuration record.
type Options []Option

// New builds a record from alternating keys and values, e.g. `New("R", "spec", "bail", true)`.
func New(pairs ...any) Options {
	if len(pairs)%2 != 0 {
		panic("options.New expects an even number of arguments")
	}

	opts := make(Options, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("options.New expects string keys, got %T", pairs[i]))
		}
		opts = opts.Set(key, pairs[i+1])
	}

	return opts
}

// Get returns the value stored under key.
func (o Options) Get(key string) (any, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt.Value, true
		}
	}

	return nil, false
}

// Has reports whether key is part of the record.
func (o Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set returns a record where key holds value. An existing key keeps its position.
func (o Options) Set(key string, value any) Options {
	for i, opt := range o {
		if opt.Key == key {
			out := o.clone()
			out[i].Value = value
			return out
		}
	}

	return append(o.clone(), Option{Key: key, Value: value})
}

// Without returns a copy of the record with the given keys removed.
func (o Options) Without(keys ...string) Options {
	out := make(Options, 0, len(o))

	for _, opt := range o {
		omit := false
		for _, key := range keys {
			if opt.Key == key {
				omit = true
				break
			}
		}

		if !omit {
			out = append(out, opt)
		}
	}

	return out
}

// Keys returns the keys of the record in order.
func (o Options) Keys() []string {
	keys := make([]string, len(o))
	for i, opt := range o {
		keys[i] = opt.Key
	}
	return keys
}

func (o Options) clone() Options {
	out := make(Options, len(o), len(o)+1)
	copy(out, o)
	return out
}

// UnmarshalYAML decodes a YAML mapping while preserving the order of its keys. Nested mappings are decoded into
// nested records; whether they are allowed is up to the consumer of the record.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	if node.Kind != yaml.MappingNode {
		return errors.NewConfigurationError("expected a mapping on line %d, found %s", node.Line, describe(node))
	}

	opts := make(Options, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return errors.NewConfigurationError("invalid option name on line %d: %s", keyNode.Line, err)
		}

		value, err := decodeValue(valueNode, true)
		if err != nil {
			return errors.Wrapf(err, "invalid value for %q", key)
		}

		opts = opts.Set(key, value)
	}

	*o = opts
	return nil
}

func decodeValue(node *yaml.Node, allowSequence bool) (any, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	switch node.Kind {
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, errors.NewConfigurationError("unable to decode scalar on line %d: %s", node.Line, err)
		}
		return value, nil
	case yaml.SequenceNode:
		if !allowSequence {
			return nil, errors.NewConfigurationError("nested sequences are not supported (line %d)", node.Line)
		}

		values := make([]any, 0, len(node.Content))
		for _, element := range node.Content {
			value, err := decodeValue(element, false)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return values, nil
	case yaml.MappingNode:
		if !allowSequence {
			return nil, errors.NewConfigurationError("mappings are not supported inside sequences (line %d)", node.Line)
		}

		var nested Options
		if err := nested.UnmarshalYAML(node); err != nil {
			return nil, err
		}
		return nested, nil
	default:
		return nil, errors.NewConfigurationError("unsupported value on line %d: %s", node.Line, describe(node))
	}
}

func describe(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "a document"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.ScalarNode:
		return fmt.Sprintf("the scalar %q", node.Value)
	case yaml.AliasNode:
		return "an alias"
	default:
		return "an unknown node"
	}
}

// Decode parses a YAML document into a record.
func Decode(data []byte) (Options, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewConfigurationError("unable to parse YAML: %s", err)
	}

	// An empty document is an empty record
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Options{}, nil
	}

	var opts Options
	if err := opts.UnmarshalYAML(doc.Content[0]); err != nil {
		return nil, errors.WithStack(err)
	}

	return opts, nil
}
