package agent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRegistryValidation(t *testing.T) {
	noop := func(map[string]any) (string, error) { return "", nil }
	tests := []struct {
		name    string
		tools   []Tool
		wantErr string
	}{
		{name: "valid", tools: []Tool{echoTool(), pingTool()}},
		{name: "empty name", tools: []Tool{{Execute: noop}}, wantErr: "tool name is empty"},
		{name: "missing handler", tools: []Tool{{Name: "x"}}, wantErr: "tool x has no handler"},
		{name: "unnamed param", tools: []Tool{{Name: "x", Param: &Param{}, Execute: noop}}, wantErr: "unnamed parameter"},
		{name: "duplicate", tools: []Tool{pingTool(), pingTool()}, wantErr: "tool ping already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegistry(tt.tools...)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				require.Nil(t, r)
				return
			}
			require.NoError(t, err)
			require.Len(t, r.Tools(), len(tt.tools))
		})
	}
}

func TestRegistryToolsSorted(t *testing.T) {
	r, err := NewRegistry(pingTool(), echoTool())
	require.NoError(t, err)

	var names []string
	for _, tool := range r.Tools() {
		names = append(names, tool.Name)
	}
	require.Equal(t, []string{"echo", "ping"}, names)
}

func TestRegistryInvoke(t *testing.T) {
	r, err := NewRegistry(echoTool(), pingTool())
	require.NoError(t, err)

	out, err := r.Invoke("echo", map[string]any{"text": "hi", "extra": 1})
	require.NoError(t, err)
	require.Equal(t, "echo: hi", out)

	out, err = r.Invoke("ping", nil)
	require.NoError(t, err)
	require.Equal(t, "pong", out)

	_, err = r.Invoke("missing", nil)
	require.ErrorIs(t, err, ErrUnknownTool)

	_, err = r.Invoke("echo", map[string]any{"text": 3})
	require.ErrorIs(t, err, ErrInvalidArgs)

	_, err = r.Invoke("echo", nil)
	require.ErrorIs(t, err, ErrInvalidArgs)
}

func TestInputSchema(t *testing.T) {
	schema := echoTool().InputSchema()
	require.Equal(t, "object", schema["type"])
	require.Equal(t, []string{"text"}, schema["required"])
	props := schema["properties"].(map[string]interface{})
	require.Contains(t, props, "text")

	schema = pingTool().InputSchema()
	require.NotContains(t, schema, "required")
	require.Empty(t, schema["properties"])
}
