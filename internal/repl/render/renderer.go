package render

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	maxArgValueWidth = 60
	outputIndent     = "   "
)

// Renderer handles all agent-related output rendering in the REPL.
type Renderer struct {
	writer    io.Writer
	termWidth func() int // Function to get current terminal width

	// markdown renders replies through glamour
	markdown bool
	// animated enables the thinking spinner and in-place tool status updates,
	// which only make sense on a real terminal
	animated bool

	// Track lines printed by RenderToolExecuting so RenderToolComplete can replace them
	lastToolExecutingLines int
}

// New creates a new Renderer instance
func New(writer io.Writer, termWidth func() int) *Renderer {
	return &Renderer{
		writer:    writer,
		termWidth: termWidth,
	}
}

// SetMarkdown toggles markdown rendering of agent replies.
func (r *Renderer) SetMarkdown(enabled bool) {
	r.markdown = enabled
}

// SetAnimated toggles spinners and cursor movement.
func (r *Renderer) SetAnimated(enabled bool) {
	r.animated = enabled
}

// Writer returns the underlying writer.
func (r *Renderer) Writer() io.Writer {
	return r.writer
}

// RenderAgentHeader renders the header line shown before a reply.
func (r *Renderer) RenderAgentHeader(model string) {
	fmt.Fprintln(r.writer, HeaderStyle.Render(fmt.Sprintf("── agent: %s ───", model)))
}

// RenderAgentFooter renders token usage, tool-loop iterations and timing for a turn.
func (r *Renderer) RenderAgentFooter(inputTokens, outputTokens, iterations int, duration time.Duration) {
	steps := "steps"
	if iterations == 1 {
		steps = "step"
	}
	footer := fmt.Sprintf("── %s in · %s out · %d %s · %.1fs ───",
		humanize.Comma(int64(inputTokens)),
		humanize.Comma(int64(outputTokens)),
		iterations, steps,
		duration.Seconds(),
	)

	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, HeaderStyle.Render(footer))
}

// StartThinkingSpinner starts a "Thinking..." spinner and returns a stop function.
// The stop function blocks until the spinner has fully stopped and cleared the line.
func (r *Renderer) StartThinkingSpinner(ctx context.Context) func() {
	if !r.animated {
		return func() {}
	}
	spinner := NewSpinner(r.writer)
	spinner.SetMessage("Thinking...")
	return spinner.Start(ctx)
}

// RenderAgentReply renders the final reply of a turn.
func (r *Renderer) RenderAgentReply(text string) {
	if r.markdown {
		if rendered, err := r.renderMarkdown(text); err == nil {
			fmt.Fprint(r.writer, rendered)
			return
		}
	}
	fmt.Fprintln(r.writer, wordwrap.String(text, r.getTerminalWidth()))
}

func (r *Renderer) renderMarkdown(text string) (string, error) {
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(r.getTerminalWidth()-4),
	)
	if err != nil {
		return "", err
	}
	return md.Render(text)
}

// RenderAgentError renders an error that ended a turn.
func (r *Renderer) RenderAgentError(err error) {
	fmt.Fprintln(r.writer, ErrorStyle.Render(fmt.Sprintf("%s %v", SymbolError, err)))
}

// RenderToolExecuting renders a tool in executing state (args complete, running)
func (r *Renderer) RenderToolExecuting(toolName string, args map[string]interface{}) {
	output := r.formatToolStatus(toolName, "executing", args, 0)

	// Count how many lines this output will produce (for later replacement)
	r.lastToolExecutingLines = strings.Count(output, "\n") + 1

	r.renderToolOutput(output, true)
}

// RenderToolComplete renders a tool in complete state (success or error)
// It replaces the previously rendered "executing" lines with the completion status.
func (r *Renderer) RenderToolComplete(toolName string, args map[string]interface{}, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	output := r.formatToolStatus(toolName, status, args, duration.Milliseconds())

	if r.animated && r.lastToolExecutingLines > 0 {
		for i := 0; i < r.lastToolExecutingLines; i++ {
			fmt.Fprintf(r.writer, "\033[A\033[K") // Move up one line and clear it
		}
	}
	r.lastToolExecutingLines = 0

	r.renderToolOutput(output, success)
}

// RenderToolOutput renders a one-line preview of a tool result.
func (r *Renderer) RenderToolOutput(toolName string, output string) {
	preview := strings.TrimSpace(output)
	if idx := strings.Index(preview, "\n"); idx >= 0 {
		preview = preview[:idx] + " …"
	}
	if preview == "" {
		return
	}

	width := uint(r.getTerminalWidth() - len(outputIndent))
	fmt.Fprintln(r.writer, DimStyle.Render(outputIndent+truncate.StringWithTail(preview, width, "...")))
}

// RenderSystemMessage renders a system/status message with → prefix
func (r *Renderer) RenderSystemMessage(message string) {
	fmt.Fprintln(r.writer, SystemMessageStyle.Render(fmt.Sprintf("%s %s", SymbolSystemMessage, message)))
}

// RenderText renders plain text wrapped to the terminal width.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, wordwrap.String(text, r.getTerminalWidth()))
}

// formatToolStatus provides formatting for tool status
func (r *Renderer) formatToolStatus(toolName, status string, args map[string]interface{}, durationMs int64) string {
	var sb strings.Builder

	durationSec := float64(durationMs) / 1000.0

	switch status {
	case "executing":
		sb.WriteString(fmt.Sprintf("%s %s", SymbolToolPending, toolName))
	case "success":
		sb.WriteString(fmt.Sprintf("%s %s %s (%.1fs)", SymbolToolComplete, toolName, SymbolSuccess, durationSec))
	case "error":
		sb.WriteString(fmt.Sprintf("%s %s %s (%.1fs)", SymbolToolComplete, toolName, SymbolError, durationSec))
	}
	if len(args) > 0 {
		sb.WriteString("\n")
		sb.WriteString(formatArgs(args))
	}

	return sb.String()
}

// formatArgs formats tool arguments for display, sorted by key
func formatArgs(args map[string]interface{}) string {
	var sb strings.Builder
	for _, k := range slices.Sorted(maps.Keys(args)) {
		valueStr := truncate.StringWithTail(fmt.Sprintf("%v", args[k]), maxArgValueWidth, "...")
		sb.WriteString(fmt.Sprintf("%s%s: %s\n", outputIndent, k, valueStr))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// renderToolOutput renders tool status output with appropriate styling
func (r *Renderer) renderToolOutput(output string, success bool) {
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if i > 0 {
			// Subsequent lines (args): print with dim style
			fmt.Fprintln(r.writer, DimStyle.Render(line))
			continue
		}
		switch {
		case strings.HasPrefix(line, SymbolToolPending):
			fmt.Fprintln(r.writer, ToolPendingStyle.Render(SymbolToolPending)+line[len(SymbolToolPending):])
		case strings.HasPrefix(line, SymbolToolComplete):
			fmt.Fprintln(r.writer, StyledSymbol(SymbolToolComplete, success)+line[len(SymbolToolComplete):])
		default:
			fmt.Fprintln(r.writer, line)
		}
	}
}

// getTerminalWidth returns the current terminal width, with a sensible default
func (r *Renderer) getTerminalWidth() int {
	if r.termWidth != nil {
		width := r.termWidth()
		if width > 0 {
			return width
		}
	}
	return 80 // Default fallback
}
