package agent

// Role identifies who produced a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a single tool invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Message is one turn of conversation history.
type Message struct {
	Role    Role
	Content string

	// ToolCalls is set on assistant messages that request tool execution.
	ToolCalls []ToolCall

	// ToolCallID and ToolName are set on tool results.
	ToolCallID string
	ToolName   string
}

// ReplyKind tells a final answer apart from a tool request.
type ReplyKind int

const (
	FinalAnswer ReplyKind = iota
	ToolRequest
)

func (k ReplyKind) String() string {
	if k == ToolRequest {
		return "tool_request"
	}
	return "final_answer"
}

// Kind reports whether the message asks for tools or answers the user.
// Text alongside tool calls is narration; the calls decide the kind.
func (m Message) Kind() ReplyKind {
	if len(m.ToolCalls) > 0 {
		return ToolRequest
	}
	return FinalAnswer
}

func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

func ToolResult(call ToolCall, result string) Message {
	return Message{
		Role:       RoleTool,
		Content:    result,
		ToolCallID: call.ID,
		ToolName:   call.Name,
	}
}
