package repl

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/atinylittleshell/toolchat/internal/history"
	"github.com/atinylittleshell/toolchat/internal/repl/render"
)

// ErrExit is returned when the user requests to exit the REPL.
var ErrExit = fmt.Errorf("exit requested")

const (
	historyListLimit  = 20
	historyPromptWide = 60
)

const helpText = `Available commands:
  exit, quit, q   leave toolchat
  clear           forget the conversation so far
  history         list the turns of this session
  help, ?         show this message

Anything else is sent to the agent. Try:
  What's the latest news on AI?
  Calculate 156 * 42 + 890
  Get ticker info for AAPL
  My name is John, then: What's my name?`

// handleBuiltinCommand handles built-in REPL commands.
// Returns true if the command was handled, and an error if the REPL should exit.
func (r *REPL) handleBuiltinCommand(command string) (bool, error) {
	switch strings.ToLower(command) {
	case "exit", "quit", "q":
		// Signal exit by returning ErrExit
		return true, ErrExit
	case "clear":
		r.conversation.Clear()
		r.renderer.RenderSystemMessage("Conversation history cleared.")
		return true, nil
	case "help", "?":
		r.showHelp()
		return true, nil
	case "history":
		r.showHistory()
		return true, nil
	default:
		return false, nil
	}
}

func (r *REPL) showHelp() {
	r.renderer.RenderText(helpText)
	fmt.Fprintln(r.output)
}

// showHistory lists recent journal turns with the tools each one used.
func (r *REPL) showHistory() {
	if r.journal == nil {
		r.renderer.RenderSystemMessage("History is not available.")
		return
	}

	turns, err := r.journal.RecentTurns(r.conversation.ID(), historyListLimit)
	if err != nil {
		r.logger.Warn("failed to read journal", zap.Error(err))
		r.renderer.RenderAgentError(fmt.Errorf("failed to read history: %w", err))
		return
	}
	if len(turns) == 0 {
		r.renderer.RenderSystemMessage("No turns yet.")
		return
	}

	for i, turn := range turns {
		status := render.StyledSymbol(render.SymbolSuccess, true)
		if turn.Failed {
			status = render.StyledSymbol(render.SymbolError, false)
		}
		fmt.Fprintf(r.output, "%s %d. %s %s\n",
			status,
			i+1,
			truncate.StringWithTail(turn.Prompt, historyPromptWide, "..."),
			render.DimStyle.Render(fmt.Sprintf("(%s, %s)", humanize.Time(turn.CreatedAt), english.Plural(turn.Iterations, "step", "steps"))),
		)

		calls, err := r.journal.ToolCalls(turn.ID)
		if err != nil {
			r.logger.Warn("failed to read journal", zap.Error(err))
			continue
		}
		if len(calls) > 0 {
			names := lo.Map(calls, func(c history.ToolCallEntry, _ int) string { return c.Tool })
			fmt.Fprintln(r.output, render.DimStyle.Render("   tools: "+strings.Join(names, ", ")))
		}
	}
}

// termWidth returns the width of stdout when it is a terminal.
func (r *REPL) termWidth() int {
	if r.output != os.Stdout {
		return 80
	}
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		termWidth = 80 // Default fallback
	}
	return termWidth
}
