package tools

import (
	"context"

	"github.com/atinylittleshell/toolchat/internal/mathexpr"
	"github.com/atinylittleshell/toolchat/internal/search"
	"github.com/atinylittleshell/toolchat/internal/ticker"
)

// Names of the built-in tools.
const (
	SearchToolName = "search_tool"
	MathToolName   = "math_tool"
	TickerToolName = "custom_ticker_info"
)

// SearchArgs are the arguments of search_tool.
type SearchArgs struct {
	Query string `json:"query" jsonschema_description:"The search query string"`
}

// MathArgs are the arguments of math_tool.
type MathArgs struct {
	Expression string `json:"expression" jsonschema_description:"Mathematical expression as a string (e.g., \"2 + 2\", \"10 * 5 + 3\")"`
}

// TickerArgs are the arguments of custom_ticker_info.
type TickerArgs struct {
	TickerSymbol string `json:"ticker_symbol" jsonschema_description:"Stock ticker symbol (e.g., \"AAPL\", \"GOOGL\")"`
}

const (
	searchDescription = "Search the internet for current information using Tavily API. " +
		"Use this when you need to find recent information, facts, or answer questions requiring web search."
	mathDescription = "Evaluate mathematical expressions safely. " +
		"Supports basic arithmetic operations: +, -, *, /, **, parentheses."
	tickerDescription = "Get mock stock ticker information for demonstration purposes. " +
		"Returns simulated stock data for educational purposes."
)

// NewSearchTool wraps a search gateway.
func NewSearchTool(gateway *search.Gateway) (*Tool, error) {
	return New(SearchToolName, searchDescription, func(ctx context.Context, args SearchArgs) string {
		return gateway.Search(ctx, args.Query)
	})
}

// NewMathTool wraps the expression evaluator.
func NewMathTool() (*Tool, error) {
	return New(MathToolName, mathDescription, func(_ context.Context, args MathArgs) string {
		return mathexpr.Evaluate(args.Expression)
	})
}

// NewTickerTool wraps a ticker store.
func NewTickerTool(store *ticker.Store) (*Tool, error) {
	return New(TickerToolName, tickerDescription, func(_ context.Context, args TickerArgs) string {
		return store.Lookup(args.TickerSymbol)
	})
}

// NewDefaultRegistry builds the agent's three tools in order: search,
// math, ticker.
func NewDefaultRegistry(gateway *search.Gateway, store *ticker.Store) (*Registry, error) {
	searchTool, err := NewSearchTool(gateway)
	if err != nil {
		return nil, err
	}
	mathTool, err := NewMathTool()
	if err != nil {
		return nil, err
	}
	tickerTool, err := NewTickerTool(store)
	if err != nil {
		return nil, err
	}
	return NewRegistry(searchTool, mathTool, tickerTool)
}
