package agent

import (
	"context"
	"errors"
	"slices"
)

// scriptedModel replays canned replies and records the history of every call.
type scriptedModel struct {
	replies []Message
	err     error
	calls   [][]Message
	tools   [][]Tool
}

func (m *scriptedModel) Complete(_ context.Context, history []Message, tools []Tool) (Message, error) {
	m.calls = append(m.calls, slices.Clone(history))
	m.tools = append(m.tools, tools)
	if m.err != nil {
		return Message{}, m.err
	}
	if len(m.replies) == 0 {
		return Message{}, errors.New("script exhausted")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

// loopingModel asks for the same tool forever.
type loopingModel struct{ calls int }

func (m *loopingModel) Complete(context.Context, []Message, []Tool) (Message, error) {
	m.calls++
	return Message{ToolCalls: []ToolCall{{ID: "x", Name: "echo", Args: map[string]any{"text": "again"}}}}, nil
}

func echoTool() Tool {
	return Tool{
		Name:        "echo",
		Description: "Echo the text back",
		Param:       &Param{Name: "text", Description: "Text to echo"},
		Execute: func(args map[string]any) (string, error) {
			return "echo: " + args["text"].(string), nil
		},
	}
}

func pingTool() Tool {
	return Tool{
		Name:        "ping",
		Description: "Reply with pong",
		Execute:     func(map[string]any) (string, error) { return "pong", nil },
	}
}
