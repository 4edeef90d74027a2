// Package repl provides the interactive chat loop for toolchat. It reads one
// line at a time, dispatches built-in commands, and hands everything else to
// the conversation session.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/atinylittleshell/toolchat/internal/history"
	"github.com/atinylittleshell/toolchat/internal/repl/render"
)

const (
	DefaultPrompt   = "You: "
	farewellMessage = "Goodbye! Thanks for using toolchat."
	maxLineBytes    = 1024 * 1024
)

// Conversation is the part of agent.Session the loop drives.
type Conversation interface {
	Turn(ctx context.Context, userText string) string
	Clear()
	ID() string
}

// Options configures a REPL.
type Options struct {
	Conversation Conversation
	Journal      *history.Journal // optional, enables the history command
	Renderer     *render.Renderer // nil renders to Output
	Welcome      *render.WelcomeInfo

	Input  io.Reader // defaults to os.Stdin
	Output io.Writer // defaults to os.Stdout
	Prompt string    // defaults to DefaultPrompt
	Logger *zap.Logger
}

// REPL is the read-eval-print loop.
type REPL struct {
	conversation Conversation
	journal      *history.Journal
	renderer     *render.Renderer
	welcome      *render.WelcomeInfo
	input        io.Reader
	output       io.Writer
	prompt       string
	logger       *zap.Logger
}

// New creates a REPL.
func New(opts Options) (*REPL, error) {
	if opts.Conversation == nil {
		return nil, errors.New("repl requires a conversation")
	}

	r := &REPL{
		conversation: opts.Conversation,
		journal:      opts.Journal,
		renderer:     opts.Renderer,
		welcome:      opts.Welcome,
		input:        opts.Input,
		output:       opts.Output,
		prompt:       opts.Prompt,
		logger:       opts.Logger,
	}
	if r.input == nil {
		r.input = os.Stdin
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if r.prompt == "" {
		r.prompt = DefaultPrompt
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.renderer == nil {
		r.renderer = render.New(r.output, nil)
	}

	return r, nil
}

// readLines feeds lines from input until EOF or done is closed. The error
// channel receives the scanner error (nil at EOF) before lines is closed.
func (r *REPL) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r.input)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errs <- scanner.Err()
	}()

	return lines, errs
}

// Run starts the loop. It returns nil when the user exits, input ends, or
// ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	if r.welcome != nil {
		render.RenderWelcome(r.output, *r.welcome, r.termWidth())
	}
	r.showHelp()

	done := make(chan struct{})
	defer close(done)
	lines, readErrs := r.readLines(done)

	for {
		fmt.Fprint(r.output, r.prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(r.output)
			r.logger.Info("interrupted", zap.Error(ctx.Err()))
			r.renderer.RenderSystemMessage("Interrupted by user (Ctrl+C)")
			r.renderer.RenderSystemMessage(farewellMessage)
			return nil

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.output)
				if err := <-readErrs; err != nil {
					r.logger.Error("failed to read input", zap.Error(err))
					return fmt.Errorf("failed to read input: %w", err)
				}
				r.logger.Info("input closed")
				r.renderer.RenderSystemMessage(farewellMessage)
				return nil
			}

			if err := r.processLine(ctx, line); errors.Is(err, ErrExit) {
				r.renderer.RenderSystemMessage(farewellMessage)
				return nil
			}
		}
	}
}

// processLine handles one line of input. Panics are logged and reported so
// the loop can continue.
func (r *REPL) processLine(ctx context.Context, line string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("unexpected error while handling input",
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			r.renderer.RenderAgentError(fmt.Errorf("unexpected error: %v", rec))
			err = nil
		}
	}()

	input := strings.TrimSpace(line)
	if input == "" {
		return nil
	}

	if handled, err := r.handleBuiltinCommand(input); handled {
		return err
	}

	fmt.Fprintln(r.output)
	r.conversation.Turn(ctx, input)
	fmt.Fprintln(r.output)
	return nil
}
