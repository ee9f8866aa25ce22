package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"weatherbot/agent"
)

// Logger colors
var (
	stepColor   = color.New(color.FgCyan)
	toolColor   = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
	streamColor = color.New(color.Faint)
)

var (
	styleRole = lipgloss.NewStyle().Bold(true)
	styleRule = lipgloss.NewStyle().Faint(true)
)

// prettyArgs renders tool arguments compactly for display.
func prettyArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	bytes, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprintf("%v", args)
	}
	return truncate(string(bytes), 100)
}

// truncate shortens s to at most max bytes, ending in "..." and never
// splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max-3]
	for len(cut) > 0 {
		r, size := utf8.DecodeLastRuneInString(cut)
		if r != utf8.RuneError || size != 1 {
			break
		}
		cut = cut[:len(cut)-1]
	}
	return cut + "..."
}

func roleTag(m agent.Message) string {
	switch m.Role {
	case agent.RoleUser:
		return "User"
	case agent.RoleAssistant:
		return "Assistant"
	case agent.RoleTool:
		return "Tool:" + m.ToolName
	default:
		return string(m.Role)
	}
}

func messageText(m agent.Message) string {
	if len(m.ToolCalls) == 0 {
		return m.Content
	}
	calls := make([]string, 0, len(m.ToolCalls))
	for _, call := range m.ToolCalls {
		calls = append(calls, fmt.Sprintf("%s(%s)", call.Name, prettyArgs(call.Args)))
	}
	text := "requests " + strings.Join(calls, ", ")
	if m.Content != "" {
		text = m.Content + " " + text
	}
	return text
}

// printHistory dumps the numbered conversation with role tags.
func printHistory(out io.Writer, history []agent.Message) {
	fmt.Fprintln(out, "\n🧠 Agent Memory (Full Messages So Far):")
	for i, m := range history {
		fmt.Fprintf(out, "%d. %s %s\n", i+1, styleRole.Render("["+roleTag(m)+"]"), messageText(m))
	}
	fmt.Fprintln(out, "\n"+styleRule.Render(strings.Repeat("=", 60))+"\n")
}
