// Package agent runs the tool-calling conversation loop behind each REPL turn.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/atinylittleshell/toolchat/internal/history"
	"github.com/atinylittleshell/toolchat/internal/provider"
	"github.com/atinylittleshell/toolchat/internal/repl/render"
)

const (
	// DefaultMaxIterations bounds the model calls made for one turn.
	DefaultMaxIterations = 5
	// DefaultHistoryLimit is the number of messages kept between turns.
	DefaultHistoryLimit = 10

	MaxIterationsMessage = "Agent stopped due to max iterations."
	NoResponseMessage    = "No response generated"
)

// DefaultSystemPrompt is the instruction sent at the start of every request.
const DefaultSystemPrompt = `You are a helpful AI assistant with access to tools.

Available tools:
- search_tool: Search the internet for current information using Tavily
- math_tool: Evaluate mathematical expressions safely
- custom_ticker_info: Get stock ticker information (mock data)

Guidelines:
1. Think step by step about what tool to use
2. Use tools when needed to provide accurate information
3. Provide clear, concise responses
4. Remember previous conversation context
5. For calculations, always use the math_tool
6. For current information, use the search_tool
7. Be friendly and helpful`

// timeNow is a variable that can be overridden for testing.
var timeNow = time.Now

// ToolSet is the part of the tool registry the session needs.
type ToolSet interface {
	ChatTools() []provider.ChatTool
	Execute(ctx context.Context, name string, args map[string]interface{}) (string, error)
}

// Options configures a Session.
type Options struct {
	Provider      provider.ModelProvider
	Registry      ToolSet
	Model         string
	Temperature   float32
	SystemPrompt  string // empty uses DefaultSystemPrompt
	MaxIterations int    // 0 uses DefaultMaxIterations
	HistoryLimit  int    // 0 uses DefaultHistoryLimit

	Logger   *zap.Logger
	Journal  *history.Journal // optional
	Renderer *render.Renderer // optional
}

// Session holds the bounded conversation history and answers turns.
// Turns must not run concurrently.
type Session struct {
	id            string
	provider      provider.ModelProvider
	registry      ToolSet
	model         string
	temperature   float32
	systemPrompt  string
	maxIterations int
	historyLimit  int

	history []provider.ChatMessage

	logger   *zap.Logger
	journal  *history.Journal
	renderer *render.Renderer
}

// turnStats accumulates usage across the model calls of one turn.
type turnStats struct {
	inputTokens  int
	outputTokens int
	iterations   int
}

// NewSession creates a session with an empty history.
func NewSession(opts Options) (*Session, error) {
	if opts.Provider == nil {
		return nil, errors.New("session requires a model provider")
	}
	if opts.Registry == nil {
		return nil, errors.New("session requires a tool registry")
	}
	if opts.Model == "" {
		return nil, errors.New("session requires a model")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		id:            uuid.NewString(),
		provider:      opts.Provider,
		registry:      opts.Registry,
		model:         opts.Model,
		temperature:   opts.Temperature,
		systemPrompt:  opts.SystemPrompt,
		maxIterations: opts.MaxIterations,
		historyLimit:  opts.HistoryLimit,
		logger:        logger,
		journal:       opts.Journal,
		renderer:      opts.Renderer,
	}
	if s.systemPrompt == "" {
		s.systemPrompt = DefaultSystemPrompt
	}
	if s.maxIterations <= 0 {
		s.maxIterations = DefaultMaxIterations
	}
	if s.historyLimit <= 0 {
		s.historyLimit = DefaultHistoryLimit
	}

	return s, nil
}

// ID returns the session identifier used in logs and the journal.
func (s *Session) ID() string {
	return s.id
}

// Model returns the model the session talks to.
func (s *Session) Model() string {
	return s.model
}

// History returns a copy of the conversation history.
func (s *Session) History() []provider.ChatMessage {
	return append([]provider.ChatMessage(nil), s.history...)
}

// Len returns the number of messages in the history.
func (s *Session) Len() int {
	return len(s.history)
}

// Clear empties the conversation history.
func (s *Session) Clear() {
	s.history = nil
	s.logger.Debug("conversation cleared", zap.String("session", s.id))
}

// Turn answers one user message. It always returns text: the reply, or
// "Error: ..." when the model could not be reached, in which case the
// history is left untouched.
func (s *Session) Turn(ctx context.Context, userText string) string {
	startTime := timeNow()

	var entry *history.TurnEntry
	if s.journal != nil {
		var err error
		entry, err = s.journal.StartTurn(s.id, userText)
		if err != nil {
			s.logger.Warn("failed to journal turn", zap.Error(err))
		}
	}

	if s.renderer != nil {
		s.renderer.RenderAgentHeader(s.model)
	}

	output, stats, err := s.run(ctx, userText, entry)
	if err != nil {
		output = fmt.Sprintf("Error: %v", err)
		s.logger.Error("turn failed",
			zap.String("session", s.id),
			zap.Int("iterations", stats.iterations),
			zap.Error(err),
		)
		if s.renderer != nil {
			s.renderer.RenderAgentError(err)
		}
	} else {
		if strings.TrimSpace(output) == "" {
			output = NoResponseMessage
		}
		s.appendHistory(userText, output)
		if s.renderer != nil {
			s.renderer.RenderAgentReply(output)
		}
	}

	duration := timeNow().Sub(startTime)
	if s.renderer != nil {
		s.renderer.RenderAgentFooter(stats.inputTokens, stats.outputTokens, stats.iterations, duration)
	}

	s.logger.Debug("agent interaction",
		zap.String("session", s.id),
		zap.String("message", userText),
		zap.String("response", output),
		zap.Int("iterations", stats.iterations),
		zap.Int("history", len(s.history)),
		zap.Duration("duration", duration),
	)

	if entry != nil {
		entry.Response = output
		entry.Failed = err != nil
		entry.DurationMs = duration.Milliseconds()
		entry.InputTokens = stats.inputTokens
		entry.OutputTokens = stats.outputTokens
		entry.Iterations = stats.iterations
		if err := s.journal.FinishTurn(entry); err != nil {
			s.logger.Warn("failed to journal turn", zap.Error(err))
		}
	}

	return output
}

// run is the agentic loop. It continues until the model answers without
// tool calls or the iteration limit is reached.
func (s *Session) run(ctx context.Context, userText string, entry *history.TurnEntry) (string, turnStats, error) {
	var stats turnStats

	messages := make([]provider.ChatMessage, 0, len(s.history)+2)
	messages = append(messages, provider.ChatMessage{Role: provider.RoleSystem, Content: s.systemPrompt})
	messages = append(messages, s.history...)
	messages = append(messages, provider.ChatMessage{Role: provider.RoleUser, Content: userText})

	tools := s.registry.ChatTools()
	lastContent := ""

	for iteration := 0; iteration < s.maxIterations; iteration++ {
		stats.iterations++

		var stopSpinner func()
		if s.renderer != nil {
			stopSpinner = s.renderer.StartThinkingSpinner(ctx)
		}

		response, err := s.provider.ChatCompletion(ctx, provider.ChatRequest{
			Model:       s.model,
			Temperature: s.temperature,
			Messages:    messages,
			Tools:       tools,
		})

		if stopSpinner != nil {
			stopSpinner()
		}

		if err != nil {
			return "", stats, err
		}

		if response.Usage != nil {
			stats.inputTokens += response.Usage.PromptTokens
			stats.outputTokens += response.Usage.CompletionTokens
		}

		if strings.TrimSpace(response.Content) != "" {
			lastContent = response.Content
		}

		if len(response.ToolCalls) == 0 {
			return response.Content, stats, nil
		}

		messages = append(messages, provider.ChatMessage{
			Role:      provider.RoleAssistant,
			Content:   response.Content,
			ToolCalls: response.ToolCalls,
		})
		messages = s.executeToolCalls(ctx, messages, response.ToolCalls, entry)
	}

	s.logger.Warn("agent reached maximum iterations",
		zap.String("session", s.id),
		zap.Int("max_iterations", s.maxIterations),
	)

	if lastContent != "" {
		return lastContent, stats, nil
	}
	return MaxIterationsMessage, stats, nil
}

// executeToolCalls runs the tool calls one at a time and appends their
// results to messages. Failures are reported to the model as text.
func (s *Session) executeToolCalls(ctx context.Context, messages []provider.ChatMessage, toolCalls []provider.ChatToolCall, entry *history.TurnEntry) []provider.ChatMessage {
	for _, toolCall := range toolCalls {
		if s.renderer != nil {
			s.renderer.RenderToolExecuting(toolCall.Name, toolCall.Arguments)
		}

		execStart := timeNow()
		result, err := s.registry.Execute(ctx, toolCall.Name, toolCall.Arguments)
		execDuration := timeNow().Sub(execStart)

		if err != nil {
			result = fmt.Sprintf("Error executing tool: %v", err)
			s.logger.Warn("tool execution failed",
				zap.String("tool", toolCall.Name),
				zap.Error(err),
			)
		} else {
			s.logger.Debug("tool executed",
				zap.String("tool", toolCall.Name),
				zap.Any("args", toolCall.Arguments),
				zap.Duration("duration", execDuration),
			)
		}

		if s.renderer != nil {
			s.renderer.RenderToolComplete(toolCall.Name, toolCall.Arguments, execDuration, err == nil)
			s.renderer.RenderToolOutput(toolCall.Name, result)
		}

		if entry != nil {
			s.journalToolCall(entry.ID, toolCall, result, err != nil, execDuration)
		}

		messages = append(messages, provider.ChatMessage{
			Role:       provider.RoleTool,
			Content:    result,
			Name:       toolCall.Name,
			ToolCallID: toolCall.ID,
		})
	}

	return messages
}

func (s *Session) journalToolCall(turnID uint, toolCall provider.ChatToolCall, result string, failed bool, duration time.Duration) {
	args, err := json.Marshal(toolCall.Arguments)
	if err != nil {
		args = []byte("{}")
	}

	err = s.journal.RecordToolCall(&history.ToolCallEntry{
		TurnID:     turnID,
		Tool:       toolCall.Name,
		Arguments:  string(args),
		Result:     result,
		Failed:     failed,
		DurationMs: duration.Milliseconds(),
	})
	if err != nil {
		s.logger.Warn("failed to journal tool call", zap.Error(err))
	}
}

// appendHistory records a completed exchange and keeps only the most
// recent historyLimit messages.
func (s *Session) appendHistory(userText, reply string) {
	s.history = append(s.history,
		provider.ChatMessage{Role: provider.RoleUser, Content: userText},
		provider.ChatMessage{Role: provider.RoleAssistant, Content: reply},
	)
	if len(s.history) > s.historyLimit {
		s.history = lo.Subset(s.history, -s.historyLimit, uint(s.historyLimit))
	}
}
