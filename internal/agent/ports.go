package agent

import (
	"context"
	"encoding/json"
)

// ToolSpec describes one callable tool to the model. Parameters is a JSON
// Schema object.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// Message is the provider-independent dialogue format.
type Message struct {
	Role       string // "system" | "user" | "assistant" | "tool"
	Content    string
	ToolCalls  []ToolCall // set when Role="assistant" and the model called tools
	ToolCallID string     // set when Role="tool"
}

type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// LLM is the external intelligence; it knows nothing about contracts or the
// record store.
type LLM interface {
	Complete(ctx context.Context, messages []Message, tools []ToolSpec) (*Response, error)
}
