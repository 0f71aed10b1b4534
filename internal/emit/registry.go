package emit

import (
	"fmt"
	"sort"
)

// Renderer turns the declarations of one package into file contents.
//
// Implementations register themselves via Register in their init function.
// The CLI dispatches on the --format flag through the registry.
type Renderer interface {
	// Name returns the format identifier ("kotlin", "yaml").
	Name() string

	// Ext returns the file extension including the dot.
	Ext() string

	// Render returns the contents of f.
	Render(f *File) ([]byte, error)
}

var registry = make(map[string]Renderer)

// Register adds a renderer to the registry.
//
// Panics if a renderer with the same name is already registered.
func Register(r Renderer) {
	name := r.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("emit: renderer %q already registered", name))
	}
	registry[name] = r
}

// Get returns the renderer for name, or nil.
func Get(name string) Renderer {
	return registry[name]
}

// List returns all registered format names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registered reports whether a renderer is registered for name.
func Registered(name string) bool {
	_, ok := registry[name]
	return ok
}
