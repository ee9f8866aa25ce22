package agent

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrCycleLimit is returned when the model keeps requesting tools past the configured bound.
var ErrCycleLimit = errors.New("tool cycle limit reached")

// Completer is the decision node: given the history and the available tools
// it returns the next assistant message.
type Completer interface {
	Complete(ctx context.Context, history []Message, tools []Tool) (Message, error)
}

// State is a control loop state.
type State int

const (
	Deciding State = iota
	ExecutingTools
	Done
)

func (s State) String() string {
	switch s {
	case Deciding:
		return "deciding"
	case ExecutingTools:
		return "executing_tools"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Hooks observe the loop. Nil fields are skipped.
type Hooks struct {
	Transition func(from, to State)
	Tool       func(call ToolCall, result string)
}

// Loop cycles between the decision node and tool execution until the model
// produces a final answer.
type Loop struct {
	model     Completer
	registry  *Registry
	maxCycles int
	hooks     Hooks
}

type Option func(*Loop)

// WithMaxCycles bounds the number of tool requests per run. Zero means unbounded.
func WithMaxCycles(n int) Option {
	return func(l *Loop) { l.maxCycles = n }
}

func WithHooks(h Hooks) Option {
	return func(l *Loop) { l.hooks = h }
}

func NewLoop(model Completer, registry *Registry, opts ...Option) *Loop {
	l := &Loop{model: model, registry: registry}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run drives the state machine starting from history. The returned slice is
// history plus every message appended during the run; on error it holds
// whatever was accumulated before the failure.
func (l *Loop) Run(ctx context.Context, history []Message) ([]Message, error) {
	// Clip so appends never write into the caller's backing array.
	messages := slices.Clip(history)
	tools := l.registry.Tools()
	state := Deciding
	cycles := 0

	for {
		switch state {
		case Deciding:
			reply, err := l.model.Complete(ctx, messages, tools)
			if err != nil {
				return messages, fmt.Errorf("completion failed: %w", err)
			}
			reply.Role = RoleAssistant
			messages = append(messages, reply)

			if reply.Kind() == FinalAnswer {
				state = l.transition(state, Done)
				continue
			}
			cycles++
			if l.maxCycles > 0 && cycles > l.maxCycles {
				return messages, fmt.Errorf("%w after %d tool rounds", ErrCycleLimit, l.maxCycles)
			}
			state = l.transition(state, ExecutingTools)

		case ExecutingTools:
			last := messages[len(messages)-1]
			for _, call := range last.ToolCalls {
				result, err := l.registry.Invoke(call.Name, call.Args)
				if err != nil {
					return messages, fmt.Errorf("tool %s: %w", call.Name, err)
				}
				if l.hooks.Tool != nil {
					l.hooks.Tool(call, result)
				}
				messages = append(messages, ToolResult(call, result))
			}
			state = l.transition(state, Deciding)

		case Done:
			return messages, nil
		}
	}
}

func (l *Loop) transition(from, to State) State {
	if l.hooks.Transition != nil {
		l.hooks.Transition(from, to)
	}
	return to
}
