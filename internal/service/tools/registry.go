// Package tools holds the booksmcp tool catalog and routes named tool calls to their handlers.
package tools

import (
	"fmt"

	"github.com/booksmcp/booksmcp/pkg/types"
)

// registeredTool is a catalog entry bound to its handler.
type registeredTool struct {
	entry
	handler Handler
}

// Registry is the immutable set of tools available to clients.
// It is built once at startup and only read afterwards, so it is safe for concurrent use
// without locking.
type Registry struct {
	tools  []*registeredTool
	byName map[string]*registeredTool
}

// NewRegistry builds the registry from the fixed tool catalog, binding every tool to api.
func NewRegistry(api BooksAPI) (*Registry, error) {
	if api == nil {
		return nil, fmt.Errorf("books api must not be nil")
	}

	r := &Registry{
		tools:  make([]*registeredTool, 0, len(catalog)),
		byName: make(map[string]*registeredTool, len(catalog)),
	}
	for _, e := range catalog {
		if _, exists := r.byName[e.definition.Name]; exists {
			return nil, fmt.Errorf("duplicate tool name %s in catalog", e.definition.Name)
		}
		h := newHandler(e.kind, api)
		if h == nil {
			return nil, fmt.Errorf("no handler for tool %s", e.definition.Name)
		}
		t := &registeredTool{entry: e, handler: h}
		r.tools = append(r.tools, t)
		r.byName[e.definition.Name] = t
	}
	return r, nil
}

// Definitions returns the tool definitions in catalog order.
// The returned slice is a copy; the schemas it references must be treated as read-only.
func (r *Registry) Definitions() []types.ToolDefinition {
	defs := make([]types.ToolDefinition, len(r.tools))
	for i, t := range r.tools {
		defs[i] = t.definition
	}
	return defs
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Lookup returns the handler of the named tool.
func (r *Registry) Lookup(name string) (Handler, bool) {
	t, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return t.handler, true
}

// lookup returns the full registered tool, including the metadata the dispatcher needs.
func (r *Registry) lookup(name string) (*registeredTool, bool) {
	t, ok := r.byName[name]
	return t, ok
}
