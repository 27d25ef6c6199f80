package tools

import (
	"context"
	"sync"
	"time"

	"github.com/booksmcp/booksmcp/internal/telemetry"
	"github.com/booksmcp/booksmcp/pkg/types"
)

// fakeBooksAPI records the calls it receives and answers from canned results.
type fakeBooksAPI struct {
	calls []string

	lastID   int
	lastBook map[string]any

	// results overrides the default success result per operation
	results map[string]*types.ToolCallResult
	// panics makes the named operation panic
	panics map[string]bool
}

func newFakeBooksAPI() *fakeBooksAPI {
	return &fakeBooksAPI{
		results: map[string]*types.ToolCallResult{},
		panics:  map[string]bool{},
	}
}

func (f *fakeBooksAPI) respond(op string, def *types.ToolCallResult) *types.ToolCallResult {
	f.calls = append(f.calls, op)
	if f.panics[op] {
		panic("boom")
	}
	if r, ok := f.results[op]; ok {
		return r
	}
	return def
}

func (f *fakeBooksAPI) ListBooks(context.Context) *types.ToolCallResult {
	return f.respond("list", types.NewToolCallResult([]any{}))
}

func (f *fakeBooksAPI) CreateBook(_ context.Context, book map[string]any) *types.ToolCallResult {
	f.lastBook = book
	return f.respond("create", types.NewToolCallResult(book))
}

func (f *fakeBooksAPI) GetBook(_ context.Context, id int) *types.ToolCallResult {
	f.lastID = id
	return f.respond("get", types.NewToolCallResult(map[string]any{"id": id}))
}

func (f *fakeBooksAPI) UpdateBook(_ context.Context, id int, book map[string]any) *types.ToolCallResult {
	f.lastID = id
	f.lastBook = book
	return f.respond("update", types.NewToolCallResult(map[string]any{"message": "Book updated successfully"}))
}

func (f *fakeBooksAPI) DeleteBook(_ context.Context, id int) *types.ToolCallResult {
	f.lastID = id
	return f.respond("delete", types.NewToolCallResult(map[string]any{"message": "Book deleted successfully"}))
}

type recordedToolCall struct {
	tool    string
	outcome telemetry.ToolCallOutcome
}

type fakeMetrics struct {
	mu    sync.Mutex
	calls []recordedToolCall
}

func (m *fakeMetrics) RecordToolCall(_ context.Context, tool string, outcome telemetry.ToolCallOutcome, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, recordedToolCall{tool: tool, outcome: outcome})
}
