package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLoop(t *testing.T, model Completer, opts ...Option) *Loop {
	t.Helper()
	r, err := NewRegistry(echoTool(), pingTool())
	require.NoError(t, err)
	return NewLoop(model, r, opts...)
}

func TestLoopFinalAnswer(t *testing.T) {
	model := &scriptedModel{replies: []Message{{Content: "hello"}}}
	var transitions [][2]State
	loop := newTestLoop(t, model, WithHooks(Hooks{
		Transition: func(from, to State) { transitions = append(transitions, [2]State{from, to}) },
	}))

	out, err := loop.Run(context.Background(), []Message{UserMessage("hi")})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, RoleAssistant, out[1].Role)
	require.Equal(t, FinalAnswer, out[1].Kind())
	require.Equal(t, [][2]State{{Deciding, Done}}, transitions)
	require.Len(t, model.calls, 1)
}

func TestLoopToolCycle(t *testing.T) {
	model := &scriptedModel{replies: []Message{
		{Content: "checking", ToolCalls: []ToolCall{
			{ID: "1", Name: "echo", Args: map[string]any{"text": "a"}},
			{ID: "2", Name: "ping"},
		}},
		{Content: "all done"},
	}}
	var transitions [][2]State
	var results []string
	loop := newTestLoop(t, model, WithHooks(Hooks{
		Transition: func(from, to State) { transitions = append(transitions, [2]State{from, to}) },
		Tool:       func(call ToolCall, result string) { results = append(results, call.Name+"="+result) },
	}))

	out, err := loop.Run(context.Background(), []Message{UserMessage("go")})
	require.NoError(t, err)
	require.Equal(t, [][2]State{
		{Deciding, ExecutingTools},
		{ExecutingTools, Deciding},
		{Deciding, Done},
	}, transitions)
	require.Equal(t, []string{"echo=echo: a", "ping=pong"}, results)

	require.Len(t, out, 5)
	require.Equal(t, RoleTool, out[2].Role)
	require.Equal(t, "1", out[2].ToolCallID)
	require.Equal(t, "echo", out[2].ToolName)
	require.Equal(t, "echo: a", out[2].Content)
	require.Equal(t, "pong", out[3].Content)
	require.Equal(t, "all done", out[4].Content)

	// Each decision sees the previous history plus the new items, in order.
	require.Len(t, model.calls, 2)
	require.Equal(t, out[:1], model.calls[0])
	require.Equal(t, out[:4], model.calls[1])
}

func TestLoopPassesSortedTools(t *testing.T) {
	model := &scriptedModel{replies: []Message{{Content: "ok"}}}
	loop := newTestLoop(t, model)

	_, err := loop.Run(context.Background(), []Message{UserMessage("hi")})
	require.NoError(t, err)
	require.Len(t, model.tools[0], 2)
	require.Equal(t, "echo", model.tools[0][0].Name)
	require.Equal(t, "ping", model.tools[0][1].Name)
}

func TestLoopDoesNotTouchCallerSlice(t *testing.T) {
	model := &scriptedModel{replies: []Message{{Content: "ok"}}}
	loop := newTestLoop(t, model)

	backing := make([]Message, 1, 8)
	backing[0] = UserMessage("hi")
	spare := backing[:2]
	spare[1] = UserMessage("untouched")

	out, err := loop.Run(context.Background(), backing[:1])
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "untouched", spare[1].Content)
}

func TestLoopUnknownTool(t *testing.T) {
	model := &scriptedModel{replies: []Message{
		{ToolCalls: []ToolCall{{ID: "1", Name: "teleport"}}},
	}}
	loop := newTestLoop(t, model)

	out, err := loop.Run(context.Background(), []Message{UserMessage("beam me up")})
	require.ErrorIs(t, err, ErrUnknownTool)
	require.Len(t, out, 2)
}

func TestLoopServiceError(t *testing.T) {
	boom := errors.New("503 service unavailable")
	model := &scriptedModel{err: boom}
	loop := newTestLoop(t, model)

	out, err := loop.Run(context.Background(), []Message{UserMessage("hi")})
	require.ErrorIs(t, err, boom)
	require.Len(t, out, 1)
}

func TestLoopCycleLimit(t *testing.T) {
	model := &loopingModel{}
	executed := 0
	loop := newTestLoop(t, model, WithMaxCycles(3), WithHooks(Hooks{
		Tool: func(ToolCall, string) { executed++ },
	}))

	out, err := loop.Run(context.Background(), []Message{UserMessage("spin")})
	require.ErrorIs(t, err, ErrCycleLimit)
	// Three tool rounds run; the fourth request is rejected before executing.
	require.Equal(t, 3, executed)
	require.Equal(t, 4, model.calls)
	require.Equal(t, ToolRequest, out[len(out)-1].Kind())
	// user + 3 * (request + result) + the rejected request
	require.Len(t, out, 8)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "deciding", Deciding.String())
	require.Equal(t, "executing_tools", ExecutingTools.String())
	require.Equal(t, "done", Done.String())
	require.Equal(t, "state(9)", State(9).String())
}

func TestReplyKindExclusive(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want ReplyKind
	}{
		{name: "text only", msg: Message{Content: "hi"}, want: FinalAnswer},
		{name: "empty", msg: Message{}, want: FinalAnswer},
		{name: "tool only", msg: Message{ToolCalls: []ToolCall{{Name: "ping"}}}, want: ToolRequest},
		{name: "text and tool", msg: Message{Content: "let me check", ToolCalls: []ToolCall{{Name: "ping"}}}, want: ToolRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.msg.Kind())
		})
	}
}
