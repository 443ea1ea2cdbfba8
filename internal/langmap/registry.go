// Package langmap maps file extensions to language tags. The table is a
// configuration constant shipped as embedded YAML, not inferred from file
// content.
package langmap

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var registryFile embed.FS

type registryData struct {
	Extensions map[string]string `yaml:"extensions"`
	Allowed    []string          `yaml:"allowed"`
}

// Registry resolves extensions to language tags and carries the default
// extension allow-list. Read-only after construction, safe for concurrent
// use.
type Registry struct {
	extensions map[string]string
	allowed    []string
}

// NewRegistry loads the embedded language table.
func NewRegistry() (*Registry, error) {
	data, err := registryFile.ReadFile("languages.yaml")
	if err != nil {
		return nil, fmt.Errorf("read language registry: %w", err)
	}

	var parsed registryData
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal language registry: %w", err)
	}

	if len(parsed.Extensions) == 0 {
		return nil, fmt.Errorf("language registry has no extension mappings")
	}

	return &Registry{
		extensions: parsed.Extensions,
		allowed:    parsed.Allowed,
	}, nil
}

// Detect returns the language tag for an extension (case-insensitive,
// leading dot included), or nil for unknown extensions.
func (r *Registry) Detect(ext string) *string {
	lang, ok := r.extensions[strings.ToLower(ext)]
	if !ok {
		return nil
	}
	return &lang
}

// DefaultAllowedExtensions returns a copy of the default allow-list.
func (r *Registry) DefaultAllowedExtensions() []string {
	out := make([]string, len(r.allowed))
	copy(out, r.allowed)
	return out
}
