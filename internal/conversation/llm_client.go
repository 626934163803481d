package conversation

import (
	"context"
	"encoding/json"
)

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleTool      = "tool"
)

// Finish reasons the dispatch loop branches on. Anything else is treated
// like a plain stop.
const (
	FinishStop      = "stop"
	FinishToolCalls = "tool_calls"
)

// ToolCallRequest is one function invocation the model asked for. Arguments
// is the raw JSON object the model produced; the dispatcher decodes it.
type ToolCallRequest struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ChatMessage is an internal message representation. Assistant messages may
// carry tool calls; tool messages carry the result for one call.
type ChatMessage struct {
	Role       string            `json:"role"`
	Content    string            `json:"content,omitempty"`
	ToolCalls  []ToolCallRequest `json:"tool_calls,omitempty"`
	ToolCallID string            `json:"tool_call_id,omitempty"`
	ToolName   string            `json:"tool_name,omitempty"`
}

type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

type LLMRequest struct {
	System      []string
	Messages    []ChatMessage
	Tools       []ToolDefinition // empty means the model must answer in text
	MaxTokens   int32
	Temperature float32
}

type LLMResponse struct {
	Text         string
	FinishReason string
	ToolCalls    []ToolCallRequest
	Usage        TokenUsage
}

type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}
