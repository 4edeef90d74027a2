// Package provider defines the chat completion interface used by the
// agent session and its OpenAI-compatible implementation.
package provider

import "context"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ModelProvider defines the interface for LLM model providers
type ModelProvider interface {
	// Name returns the provider name (e.g., "openrouter")
	Name() string

	// ChatCompletion sends a chat completion request.
	// The ctx parameter allows cancellation of the request.
	ChatCompletion(ctx context.Context, request ChatRequest) (*ChatResponse, error)
}

// ChatRequest represents a chat completion request
type ChatRequest struct {
	Model       string
	Temperature float32
	Messages    []ChatMessage
	Tools       []ChatTool
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role       string // "system", "user", "assistant", "tool"
	Content    string
	Name       string         // Optional: name of the tool
	ToolCallID string         // Set on tool result messages
	ToolCalls  []ChatToolCall // Set on assistant messages that requested tools
}

// ChatTool represents a tool that can be called by the model
type ChatTool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ChatResponse represents a chat completion response
type ChatResponse struct {
	Content string

	// Finish reason ("stop", "length", "tool_calls", etc.)
	FinishReason string

	Usage *ChatUsage

	ToolCalls []ChatToolCall
}

// ChatUsage represents token usage information
type ChatUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatToolCall represents a tool call requested by the model
type ChatToolCall struct {
	ID        string
	Name      string
	Arguments map[string]interface{}
}
