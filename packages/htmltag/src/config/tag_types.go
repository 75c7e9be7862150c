package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"htmltag-go/packages/htmltag/src/markup"
)

// TagTypeDefinition describes a custom delimited tag type
type TagTypeDefinition struct {
	Description      string `yaml:"description"`
	StartDelimiter   string `yaml:"start_delimiter"`
	ClosingDelimiter string `yaml:"closing_delimiter"`
	ServerTag        bool   `yaml:"server_tag"`
	// IgnoreEnclosed adds the type to the types that suppress recognition of enclosed markup
	IgnoreEnclosed bool `yaml:"ignore_enclosed"`
}

// TagTypesFile is the document read by LoadTagTypes
type TagTypesFile struct {
	TagTypes []TagTypeDefinition `yaml:"tag_types"`
}

// LoadTagTypes decodes tag type definitions from YAML
func LoadTagTypes(r io.Reader) ([]TagTypeDefinition, error) {
	var file TagTypesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot decode tag types: %w", err)
	}
	for i, def := range file.TagTypes {
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("tag type %d: %w", i, err)
		}
	}
	return file.TagTypes, nil
}

// LoadTagTypesFile decodes tag type definitions from the YAML file at path
func LoadTagTypesFile(path string) ([]TagTypeDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open tag types file: %w", err)
	}
	defer f.Close()
	return LoadTagTypes(f)
}

func (def TagTypeDefinition) validate() error {
	if def.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(def.StartDelimiter) < 2 || def.StartDelimiter[0] != '<' {
		return fmt.Errorf("start delimiter %q must begin with '<' and have at least 2 characters", def.StartDelimiter)
	}
	if def.ClosingDelimiter == "" {
		return fmt.Errorf("closing delimiter is required")
	}
	return nil
}

// RegisterTagTypes creates a tag type per definition and registers it, in order.
// It returns the created types and the subset that ignores enclosed markup.
func RegisterTagTypes(registry *markup.Registry, defs []TagTypeDefinition) (types, ignoring []markup.TagType) {
	for _, def := range defs {
		t := markup.NewDelimitedTagType(def.Description, def.StartDelimiter, def.ClosingDelimiter, def.ServerTag)
		registry.Register(t)
		types = append(types, t)
		if def.IgnoreEnclosed {
			ignoring = append(ignoring, t)
		}
	}
	return types, ignoring
}
