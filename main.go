package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weatherbot/agent"
	"weatherbot/provider/anthropic"
	"weatherbot/provider/openai"
)

// modelFactory builds the decision node for a resolved config.
type modelFactory func(cfg Config, out io.Writer) (agent.Completer, error)

type app struct {
	cfg      Config
	in       io.Reader
	out      io.Writer
	newModel modelFactory
}

// newCompleter returns the completion service client selected by cfg.
func newCompleter(cfg Config, out io.Writer) (agent.Completer, error) {
	switch cfg.Provider {
	case providerOpenAI:
		return openai.New(openai.Config{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}), nil
	case providerAnthropic:
		c := anthropic.Config{
			APIKey:      cfg.AnthropicAPIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   int64(cfg.MaxTokens),
			Temperature: cfg.Temperature,
		}
		if cfg.Debug {
			c.OnText = func(text string) { streamColor.Fprint(out, text) }
		}
		return anthropic.New(c), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func (a *app) newLoop() (*agent.Loop, error) {
	registry, err := newRegistry(a.cfg.Tools)
	if err != nil {
		return nil, err
	}
	model, err := a.newModel(a.cfg, a.out)
	if err != nil {
		return nil, err
	}

	hooks := agent.Hooks{
		Tool: func(call agent.ToolCall, result string) {
			toolColor.Fprintf(a.out, "➤ tool: %s(%s)\n", call.Name, prettyArgs(call.Args))
		},
	}
	if a.cfg.Debug {
		hooks.Transition = func(from, to agent.State) {
			stepColor.Fprintf(a.out, "\n➤ %s -> %s\n", from, to)
		}
	}
	return agent.NewLoop(model, registry,
		agent.WithMaxCycles(a.cfg.MaxCycles),
		agent.WithHooks(hooks),
	), nil
}

func (a *app) runChat(ctx context.Context) error {
	loop, err := a.newLoop()
	if err != nil {
		return err
	}
	in, err := newLineReader(a.in, a.out, a.cfg.HistoryFile)
	if err != nil {
		return err
	}
	defer in.Close()

	return chat(ctx, agent.NewSession(loop), in, a.out, a.cfg.Debug)
}

func (a *app) runAsk(ctx context.Context, prompts ...string) error {
	loop, err := a.newLoop()
	if err != nil {
		return err
	}
	for _, prompt := range prompts {
		if err := ask(ctx, loop, prompt, a.out); err != nil {
			return err
		}
	}
	return nil
}

func newRootCmd(in io.Reader, out io.Writer, newModel modelFactory) *cobra.Command {
	v := viper.New()
	a := &app{in: in, out: out, newModel: newModel}
	var configFile string

	root := &cobra.Command{
		Use:           "weatherbot",
		Short:         "Chat with a tool-calling agent that knows the weather, a joke and a poem",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ~/.weatherbot.yaml)")
	flags.String("provider", providerAnthropic, "completion service: anthropic or openai")
	flags.String("model", "", "model name (provider default when empty)")
	flags.String("base-url", "", "override the completion service base URL")
	flags.String("tools", "full", "tool set: "+toolSetNames())
	flags.Int("max-cycles", 0, "stop after this many tool requests per turn (0 = unbounded)")
	flags.Bool("debug", false, "print the full message history after each turn")
	for key, flag := range map[string]string{
		"provider":   "provider",
		"model":      "model",
		"base_url":   "base-url",
		"tools":      "tools",
		"max_cycles": "max-cycles",
		"debug":      "debug",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "chat",
			Short: "Start an interactive session (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runChat(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "ask [prompt...]",
			Short: "Answer a single prompt with no conversation history",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runAsk(cmd.Context(), strings.Join(args, " "))
			},
		},
		&cobra.Command{
			Use:   "demo",
			Short: "Run the sample isolated prompts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runAsk(cmd.Context(), demoPrompts...)
			},
		},
	)
	return root
}

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, newCompleter)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
