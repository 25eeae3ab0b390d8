package filekind

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry maps file extensions to their content kind. It is loaded
// once from the embedded YAML file and read-only afterwards.
type Registry struct {
	kinds map[Kind]Definition
	byExt map[string]Kind
	mu    sync.RWMutex
}

// NewRegistry creates a new content-kind registry from the embedded
// YAML definitions.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/kinds.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read kinds.yaml: %w", err)
	}

	var file kindsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kinds.yaml: %w", err)
	}

	r := &Registry{
		kinds: make(map[Kind]Definition, len(file.Kinds)),
		byExt: make(map[string]Kind),
	}

	for id, def := range file.Kinds {
		def.ID = id
		if len(def.Extensions) == 0 {
			return nil, fmt.Errorf("kind %s has no extensions", id)
		}
		r.kinds[id] = def
		for _, ext := range def.Extensions {
			r.byExt[strings.ToLower(ext)] = id
		}
	}

	return r, nil
}

// Get returns the definition for a kind.
func (r *Registry) Get(kind Kind) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.kinds[kind]
	return def, ok
}

// FromFileName derives the content kind from a file name's extension.
func (r *Registry) FromFileName(name string) (Definition, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return Definition{}, fmt.Errorf("file name %q has no extension", name)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	kind, ok := r.byExt[ext]
	if !ok {
		return Definition{}, fmt.Errorf("unsupported file extension %q", ext)
	}
	return r.kinds[kind], nil
}

// IsEditable reports whether a kind supports in-app content editing.
func (r *Registry) IsEditable(kind Kind) bool {
	def, ok := r.Get(kind)
	return ok && def.Editable
}
