package agent

import (
	"context"
	"slices"
)

// Session owns the conversation history of an interactive run.
type Session struct {
	loop    *Loop
	history []Message
}

func NewSession(loop *Loop) *Session {
	return &Session{loop: loop}
}

// Send appends the user's text, runs the loop once and returns the latest message.
func (s *Session) Send(ctx context.Context, text string) (Message, error) {
	history := append(s.history, UserMessage(text))
	history, err := s.loop.Run(ctx, history)
	s.history = history
	if err != nil {
		return Message{}, err
	}
	return history[len(history)-1], nil
}

// History returns a copy of the messages so far.
func (s *Session) History() []Message {
	return slices.Clone(s.history)
}

// Ask runs prompt against a fresh history. Nothing carries over between calls.
func Ask(ctx context.Context, loop *Loop, prompt string) ([]Message, error) {
	return loop.Run(ctx, []Message{UserMessage(prompt)})
}
