package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	journal, err := NewJournal()
	require.NoError(t, err)
	t.Cleanup(func() { _ = journal.Close() })
	return journal
}

func TestStartAndFinishTurn(t *testing.T) {
	journal := newTestJournal(t)

	entry, err := journal.StartTurn("session-1", "What is 2+2?")
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	entry.Response = "4"
	entry.Iterations = 2
	entry.InputTokens = 120
	entry.OutputTokens = 8
	entry.DurationMs = 350
	require.NoError(t, journal.FinishTurn(entry))

	turns, err := journal.RecentTurns("session-1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "What is 2+2?", turns[0].Prompt)
	assert.Equal(t, "4", turns[0].Response)
	assert.Equal(t, 2, turns[0].Iterations)
	assert.Equal(t, 120, turns[0].InputTokens)
	assert.Equal(t, int64(350), turns[0].DurationMs)
	assert.False(t, turns[0].Failed)
}

func TestRecentTurns_OrderAndLimit(t *testing.T) {
	journal := newTestJournal(t)

	for i := 0; i < 5; i++ {
		_, err := journal.StartTurn("s", fmt.Sprintf("prompt %d", i))
		require.NoError(t, err)
	}

	turns, err := journal.RecentTurns("s", 3)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "prompt 2", turns[0].Prompt)
	assert.Equal(t, "prompt 4", turns[2].Prompt)
}

func TestRecentTurns_SessionFilter(t *testing.T) {
	journal := newTestJournal(t)

	_, err := journal.StartTurn("a", "one")
	require.NoError(t, err)
	_, err = journal.StartTurn("b", "two")
	require.NoError(t, err)

	turns, err := journal.RecentTurns("a", 10)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "one", turns[0].Prompt)

	all, err := journal.RecentTurns("", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	count, err := journal.TurnCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestToolCalls(t *testing.T) {
	journal := newTestJournal(t)

	turn, err := journal.StartTurn("s", "price of AAPL times 2")
	require.NoError(t, err)
	other, err := journal.StartTurn("s", "unrelated")
	require.NoError(t, err)

	require.NoError(t, journal.RecordToolCall(&ToolCallEntry{TurnID: turn.ID, Tool: "custom_ticker_info", Arguments: `{"ticker_symbol":"AAPL"}`, Result: "Ticker: AAPL"}))
	require.NoError(t, journal.RecordToolCall(&ToolCallEntry{TurnID: turn.ID, Tool: "math_tool", Arguments: `{"expression":"178.5*2"}`, Result: "Result: 357.0"}))
	require.NoError(t, journal.RecordToolCall(&ToolCallEntry{TurnID: other.ID, Tool: "search_tool", Failed: true}))

	calls, err := journal.ToolCalls(turn.ID)
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, "custom_ticker_info", calls[0].Tool)
	assert.Equal(t, "math_tool", calls[1].Tool)

	calls, err = journal.ToolCalls(other.ID)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Failed)
}

func TestJournalsAreIsolated(t *testing.T) {
	first := newTestJournal(t)
	second := newTestJournal(t)

	_, err := first.StartTurn("s", "hello")
	require.NoError(t, err)

	count, err := second.TurnCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}
