package inputpipeline

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/seqinput/errors"
)

// Top-level keys of a pipeline definition.
const (
	keyClass = "class"
	keyArgs  = "args"
)

// Definition is a parsed pipeline definition: a class name and its
// arguments. A Definition is not mutated after parsing.
type Definition struct {
	Class string
	Args  map[string]any
}

// ParseDefinition parses a YAML definition with the keys "class" and
// "args". Any other top-level key, a missing or non-string class, or args
// that are not a mapping fail with MALFORMED_DEFINITION.
func ParseDefinition(text string) (Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return Definition{}, errors.MalformedDefinition("invalid YAML").WithCause(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Definition{}, errors.MalformedDefinition("definition is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Definition{}, errors.MalformedDefinition("definition must be a mapping")
	}

	def := Definition{Args: map[string]any{}}
	var hasClass bool
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case keyClass:
			if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" || value.Value == "" {
				return Definition{}, errors.MalformedDefinition("class must be a non-empty string").
					WithDetail("line", value.Line)
			}
			def.Class, hasClass = value.Value, true
		case keyArgs:
			if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
				continue
			}
			if value.Kind != yaml.MappingNode {
				return Definition{}, errors.MalformedDefinition("args must be a mapping").
					WithDetail("line", value.Line)
			}
			if err := value.Decode(&def.Args); err != nil {
				return Definition{}, errors.MalformedDefinition("invalid args").WithCause(err)
			}
		default:
			return Definition{}, errors.MalformedDefinition(fmt.Sprintf("unexpected key %q", key.Value)).
				WithDetail("key", key.Value).WithDetail("line", key.Line)
		}
	}
	if !hasClass {
		return Definition{}, errors.MalformedDefinition("class is required")
	}
	return def, nil
}

// LoadDefinitionFile reads and parses a definition file.
func LoadDefinitionFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Definition{}, errors.FileNotFound(path).WithCause(err)
		}
		return Definition{}, errors.Internal(err).WithDetail("path", path)
	}
	def, err := ParseDefinition(string(data))
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return Definition{}, appErr.WithDetail("path", path)
		}
		return Definition{}, err
	}
	return def, nil
}

// WithOverrides returns a copy of d whose args are d.Args merged with
// overrides. Overrides win; d is left untouched.
func (d Definition) WithOverrides(overrides map[string]any) Definition {
	args := make(map[string]any, len(d.Args)+len(overrides))
	maps.Copy(args, d.Args)
	maps.Copy(args, overrides)
	return Definition{Class: d.Class, Args: args}
}

// MakeInputPipelineFromDef parses text, applies overrides and builds the
// pipeline with the default registry.
func MakeInputPipelineFromDef(text string, overrides map[string]any) (InputPipeline, error) {
	def, err := ParseDefinition(text)
	if err != nil {
		return nil, err
	}
	return DefaultRegistry().Build(def.WithOverrides(overrides))
}
