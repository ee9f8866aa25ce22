package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"golang.org/x/term"
)

const promptText = "You: "

// lineReader yields one line of user input per call and io.EOF when the user is done.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

// Prompt reads input through readline with a persistent history file.
type Prompt struct {
	rl *readline.Instance
}

func NewPrompt(historyFile string) (*Prompt, error) {
	// Ensure history directory exists
	historyDir := filepath.Dir(historyFile)
	if err := os.MkdirAll(historyDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %v", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            color.GreenString(promptText),
		HistoryFile:       historyFile,
		HistorySearchFold: true,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %v", err)
	}
	return &Prompt{rl: rl}, nil
}

// Readline returns the next line. Ctrl+C and Ctrl+D both end the session.
func (p *Prompt) Readline() (string, error) {
	line, err := p.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	return line, err
}

func (p *Prompt) Close() error {
	return p.rl.Close()
}

// plainPrompt is used when stdin is not a terminal, e.g. piped input.
type plainPrompt struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPlainPrompt(in io.Reader, out io.Writer) *plainPrompt {
	return &plainPrompt{scanner: bufio.NewScanner(in), out: out}
}

func (p *plainPrompt) Readline() (string, error) {
	fmt.Fprint(p.out, promptText)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}

func (p *plainPrompt) Close() error { return nil }

// newLineReader picks readline for an interactive terminal and a plain scanner otherwise.
func newLineReader(in io.Reader, out io.Writer, historyFile string) (lineReader, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return NewPrompt(historyFile)
	}
	return newPlainPrompt(in, out), nil
}
