// Package openai talks to OpenAI-compatible /v1/chat/completions endpoints.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"weatherbot/agent"
)

const (
	DefaultBaseURL = "https://api.openai.com"
	DefaultModel   = "gpt-4o-mini"
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

type LLM struct {
	cfg        Config
	HTTPClient *http.Client
}

func New(cfg Config) *LLM {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &LLM{
		cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: time.Second * 300,
		},
	}
}

type function struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

type tool struct {
	Type     string   `json:"type"`
	Function function `json:"function"`
}

type functionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function functionCall `json:"function"`
}

type message struct {
	Role       string     `json:"role"`
	Content    *string    `json:"content"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
	Tools       []tool    `json:"tools,omitempty"`
}

type chatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int     `json:"index"`
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// Complete sends one non-streaming chat completion request.
func (l *LLM) Complete(ctx context.Context, history []agent.Message, tools []agent.Tool) (agent.Message, error) {
	req := chatCompletionRequest{
		Model:       l.cfg.Model,
		MaxTokens:   l.cfg.MaxTokens,
		Temperature: l.cfg.Temperature,
	}
	for _, t := range tools {
		params, err := json.Marshal(t.InputSchema())
		if err != nil {
			return agent.Message{}, fmt.Errorf("openai: error marshaling schema for %s: %w", t.Name, err)
		}
		req.Tools = append(req.Tools, tool{
			Type:     "function",
			Function: function{Name: t.Name, Description: t.Description, Parameters: params},
		})
	}
	for _, m := range history {
		msg, err := toMessage(m)
		if err != nil {
			return agent.Message{}, err
		}
		req.Messages = append(req.Messages, msg)
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return agent.Message{}, fmt.Errorf("openai: error marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, l.cfg.BaseURL+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return agent.Message{}, fmt.Errorf("openai: error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if l.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+l.cfg.APIKey)
	}

	resp, err := l.HTTPClient.Do(httpReq)
	if err != nil {
		return agent.Message{}, fmt.Errorf("openai: error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return agent.Message{}, fmt.Errorf("openai: unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var out chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return agent.Message{}, fmt.Errorf("openai: error decoding response: %w", err)
	}
	if len(out.Choices) == 0 {
		return agent.Message{}, fmt.Errorf("openai: response %s has no choices", out.ID)
	}
	return fromMessage(out.Choices[0].Message)
}

func toMessage(m agent.Message) (message, error) {
	content := m.Content
	switch m.Role {
	case agent.RoleUser:
		return message{Role: "user", Content: &content}, nil
	case agent.RoleTool:
		return message{Role: "tool", Content: &content, ToolCallID: m.ToolCallID, Name: m.ToolName}, nil
	case agent.RoleAssistant:
		msg := message{Role: "assistant"}
		if content != "" || len(m.ToolCalls) == 0 {
			msg.Content = &content
		}
		for _, call := range m.ToolCalls {
			args := call.Args
			if args == nil {
				args = map[string]any{}
			}
			raw, err := json.Marshal(args)
			if err != nil {
				return message{}, fmt.Errorf("openai: error marshaling arguments for %s: %w", call.Name, err)
			}
			msg.ToolCalls = append(msg.ToolCalls, toolCall{
				ID:       call.ID,
				Type:     "function",
				Function: functionCall{Name: call.Name, Arguments: string(raw)},
			})
		}
		return msg, nil
	default:
		return message{}, fmt.Errorf("openai: unsupported role %q", m.Role)
	}
}

func fromMessage(m message) (agent.Message, error) {
	reply := agent.Message{Role: agent.RoleAssistant}
	if m.Content != nil {
		reply.Content = *m.Content
	}
	for _, call := range m.ToolCalls {
		var args map[string]any
		if call.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				return agent.Message{}, fmt.Errorf("openai: failed to parse arguments for %s: %w", call.Function.Name, err)
			}
		}
		reply.ToolCalls = append(reply.ToolCalls, agent.ToolCall{
			ID:   call.ID,
			Name: call.Function.Name,
			Args: args,
		})
	}
	return reply, nil
}
