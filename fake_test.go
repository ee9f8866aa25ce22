package main

import (
	"context"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/fatih/color"

	"weatherbot/agent"
)

func init() {
	color.NoColor = true
}

// scriptedModel replays canned replies and records every history it was sent.
type scriptedModel struct {
	replies []agent.Message
	calls   [][]agent.Message
}

func (m *scriptedModel) Complete(_ context.Context, history []agent.Message, _ []agent.Tool) (agent.Message, error) {
	m.calls = append(m.calls, slices.Clone(history))
	if len(m.replies) == 0 {
		return agent.Message{}, errors.New("script exhausted")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func (m *scriptedModel) factory(Config, io.Writer) (agent.Completer, error) {
	return m, nil
}

// lines feeds canned input to chat.
type lines struct {
	input []string
}

func (l *lines) Readline() (string, error) {
	if len(l.input) == 0 {
		return "", io.EOF
	}
	line := l.input[0]
	l.input = l.input[1:]
	return line, nil
}

func (l *lines) Close() error { return nil }

func weatherCall(city string) agent.Message {
	return agent.Message{ToolCalls: []agent.ToolCall{
		{ID: "call_1", Name: "get_weather", Args: map[string]any{"city": city}},
	}}
}

// isolateHome points HOME at a temp dir so no user config or env file leaks in.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}
