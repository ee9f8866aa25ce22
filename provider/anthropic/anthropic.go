// Package anthropic implements agent.Completer on top of the Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"weatherbot/agent"
)

const DefaultModel = string(anthropic.ModelClaude3_5SonnetLatest)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int64
	Temperature float64
	// OnText receives assistant text as it streams in.
	OnText func(string)
}

type Client struct {
	client *anthropic.Client
	cfg    Config
}

func New(cfg Config) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	return &Client{
		client: anthropic.NewClient(opts...),
		cfg:    cfg,
	}
}

// Complete sends the history and tool list and returns the assistant's reply.
func (c *Client) Complete(ctx context.Context, history []agent.Message, tools []agent.Tool) (agent.Message, error) {
	// Convert tools to the format expected by the Anthropic API
	var toolParams []anthropic.ToolParam
	for _, tool := range tools {
		toolParams = append(toolParams, anthropic.ToolParam{
			Name:        anthropic.F(tool.Name),
			Description: anthropic.F(tool.Description),
			InputSchema: anthropic.F(interface{}(tool.InputSchema())),
		})
	}

	messages, err := toParams(history)
	if err != nil {
		return agent.Message{}, err
	}

	stream := c.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:       anthropic.F(anthropic.Model(c.cfg.Model)),
		MaxTokens:   anthropic.F(c.cfg.MaxTokens),
		Temperature: anthropic.F(c.cfg.Temperature),
		Messages:    anthropic.F(messages),
		Tools:       anthropic.F(toolParams),
	})

	message := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		message.Accumulate(event)

		if c.cfg.OnText == nil || event.Type != anthropic.MessageStreamEventTypeContentBlockDelta {
			continue
		}
		delta := event.Delta.(anthropic.ContentBlockDeltaEventDelta)
		if delta.Type == anthropic.ContentBlockDeltaEventDeltaTypeTextDelta {
			c.cfg.OnText(delta.Text)
		}
	}
	if err := stream.Err(); err != nil {
		return agent.Message{}, fmt.Errorf("anthropic: streaming error: %w", err)
	}

	return fromMessage(message)
}

// toParams translates history into Anthropic turns. Tool results that follow
// each other are sent back as one user turn, which is what the API expects
// after an assistant turn with several tool_use blocks.
func toParams(history []agent.Message) ([]anthropic.MessageParam, error) {
	var params []anthropic.MessageParam
	var results []anthropic.ContentBlockParamUnion

	flush := func() {
		if len(results) > 0 {
			params = append(params, anthropic.NewUserMessage(results...))
			results = nil
		}
	}

	for _, m := range history {
		switch m.Role {
		case agent.RoleUser:
			flush()
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case agent.RoleAssistant:
			flush()
			// The API rejects assistant turns without content.
			if m.Content == "" && len(m.ToolCalls) == 0 {
				continue
			}
			var blocks []anthropic.ContentBlockParamUnion
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, call := range m.ToolCalls {
				input := call.Args
				if input == nil {
					input = map[string]any{}
				}
				blocks = append(blocks, anthropic.NewToolUseBlockParam(call.ID, call.Name, input))
			}
			params = append(params, anthropic.NewAssistantMessage(blocks...))
		case agent.RoleTool:
			results = append(results, anthropic.NewToolResultBlock(m.ToolCallID, m.Content, false))
		default:
			return nil, fmt.Errorf("anthropic: unsupported role %q", m.Role)
		}
	}
	flush()
	return params, nil
}

func fromMessage(message anthropic.Message) (agent.Message, error) {
	reply := agent.Message{Role: agent.RoleAssistant}
	for _, block := range message.Content {
		switch block.Type {
		case "text":
			reply.Content += block.Text
		case "tool_use":
			var input map[string]any
			if len(block.Input) > 0 {
				if err := json.Unmarshal(block.Input, &input); err != nil {
					return agent.Message{}, fmt.Errorf("anthropic: failed to parse tool input: %w", err)
				}
			}
			reply.ToolCalls = append(reply.ToolCalls, agent.ToolCall{
				ID:   block.ID,
				Name: block.Name,
				Args: input,
			})
		}
	}
	return reply, nil
}
