package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"weatherbot/agent"
)

// demoPrompts are run back to back in isolated mode; the second one only
// makes sense with the first one's context, which isolated mode does not keep.
var demoPrompts = []string{
	"What is the weather in Berlin and tell me something hilarious ? and for the same city SUGGEST SOME TOURIST SPOT",
	"And suggest a good restaurant there",
}

func isExit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit":
		return true
	}
	return false
}

// chat runs the interactive loop until the user exits or input ends.
func chat(ctx context.Context, sess *agent.Session, in lineReader, out io.Writer, debug bool) error {
	fmt.Fprint(out, "🤖 Agent is ready. Type 'exit' to stop.\n\n")

	for {
		input, err := in.Readline()
		if errors.Is(err, io.EOF) || (err == nil && isExit(input)) {
			fmt.Fprintln(out, "👋 Bye!")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		reply, err := sess.Send(ctx, input)
		if err != nil {
			return err
		}

		if debug {
			printHistory(out, sess.History())
			continue
		}
		fmt.Fprintf(out, "Agent: %s\n\n", reply.Content)
	}
}

// ask runs prompt against a fresh history and prints the final answer.
func ask(ctx context.Context, loop *agent.Loop, prompt string, out io.Writer) error {
	fmt.Fprintf(out, "--- Testing: %s ---\n", prompt)
	messages, err := agent.Ask(ctx, loop, prompt)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, messages[len(messages)-1].Content)
	fmt.Fprintln(out, "\n"+strings.Repeat("=", 50)+"\n")
	return nil
}
