package agent

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownTool is returned when the model asks for a tool that was never registered.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArgs is returned when a tool call does not match the tool's schema.
	ErrInvalidArgs = errors.New("invalid tool arguments")
)

// Param describes the single string argument a tool may take.
type Param struct {
	Name        string
	Description string
}

// Tool represents a function that can be called by the model
type Tool struct {
	Name        string
	Description string
	// Param is nil for tools without arguments.
	Param   *Param
	Execute func(args map[string]any) (string, error)
}

// InputSchema returns the JSON schema object advertised to the completion service.
func (t Tool) InputSchema() map[string]interface{} {
	properties := map[string]interface{}{}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if t.Param != nil {
		properties[t.Param.Name] = map[string]interface{}{
			"type":        "string",
			"description": t.Param.Description,
		}
		schema["required"] = []string{t.Param.Name}
	}
	return schema
}

// Registry is the static name to tool mapping used by the loop.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry validates the tools and indexes them by name.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if t.Name == "" {
			return nil, fmt.Errorf("tool name is empty")
		}
		if t.Execute == nil {
			return nil, fmt.Errorf("tool %s has no handler", t.Name)
		}
		if t.Param != nil && t.Param.Name == "" {
			return nil, fmt.Errorf("tool %s declares an unnamed parameter", t.Name)
		}
		if _, exists := r.tools[t.Name]; exists {
			return nil, fmt.Errorf("tool %s already registered", t.Name)
		}
		r.tools[t.Name] = t
	}
	return r, nil
}

// Tools lists the registered tools sorted by name.
func (r *Registry) Tools() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools
}

// Invoke runs the named tool synchronously.
func (r *Registry) Invoke(name string, args map[string]any) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if t.Param != nil {
		v, ok := args[t.Param.Name].(string)
		if !ok {
			return "", fmt.Errorf("%w: %s expects string %q", ErrInvalidArgs, name, t.Param.Name)
		}
		args = map[string]any{t.Param.Name: v}
	}
	return t.Execute(args)
}
