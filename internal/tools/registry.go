package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/stoewer/go-strcase"

	"github.com/atinylittleshell/toolchat/internal/provider"
)

// ErrUnknownTool is returned by Execute for names not in the registry.
var ErrUnknownTool = errors.New("unknown tool")

// Registry is an ordered, immutable set of tools keyed by name.
type Registry struct {
	tools  []*Tool
	byName map[string]*Tool
}

// NewRegistry builds a registry in the given order. Names must be
// non-empty snake_case and unique.
func NewRegistry(tools ...*Tool) (*Registry, error) {
	r := &Registry{
		tools:  make([]*Tool, 0, len(tools)),
		byName: make(map[string]*Tool, len(tools)),
	}

	for _, tool := range tools {
		if tool == nil {
			return nil, fmt.Errorf("nil tool")
		}
		name := tool.Name()
		if name == "" {
			return nil, fmt.Errorf("tool name must not be empty")
		}
		if strcase.SnakeCase(name) != name {
			return nil, fmt.Errorf("tool name %q must be snake_case", name)
		}
		if _, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("duplicate tool name %q", name)
		}
		r.tools = append(r.tools, tool)
		r.byName[name] = tool
	}

	return r, nil
}

// Tools returns the tools in registration order.
func (r *Registry) Tools() []*Tool {
	return append([]*Tool(nil), r.tools...)
}

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	return lo.Map(r.tools, func(t *Tool, _ int) string { return t.Name() })
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (*Tool, bool) {
	tool, ok := r.byName[name]
	return tool, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// ChatTools converts the registry into the descriptors sent to the model.
func (r *Registry) ChatTools() []provider.ChatTool {
	return lo.Map(r.tools, func(t *Tool, _ int) provider.ChatTool {
		return provider.ChatTool{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		}
	})
}

// Execute invokes the named tool. No retries or caching happen here.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	tool, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return tool.Invoke(ctx, args)
}
