package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/booksmcp/booksmcp/client"
	"github.com/booksmcp/booksmcp/internal/api"
	"github.com/booksmcp/booksmcp/internal/service/books"
	"github.com/booksmcp/booksmcp/internal/service/tools"
	"github.com/booksmcp/booksmcp/pkg/types"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// booksStore is an in-memory stand-in for the Books API.
type booksStore struct {
	mu     sync.Mutex
	nextID int
	books  map[int]map[string]any
}

func (s *booksStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	writeJSON := func(status int, v any) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	if r.URL.Path == "/books" {
		switch r.Method {
		case http.MethodGet:
			list := make([]map[string]any, 0, len(s.books))
			for id := 1; id < s.nextID; id++ {
				if b, ok := s.books[id]; ok {
					list = append(list, b)
				}
			}
			writeJSON(http.StatusOK, list)
		case http.MethodPost:
			var b map[string]any
			if err := json.NewDecoder(r.Body).Decode(&b); err != nil || b["title"] == nil || b["author"] == nil {
				writeJSON(http.StatusBadRequest, map[string]string{"detail": "title and author are required"})
				return
			}
			b["id"] = s.nextID
			s.books[s.nextID] = b
			s.nextID++
			writeJSON(http.StatusCreated, b)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/books/"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	existing, ok := s.books[id]
	if !ok {
		writeJSON(http.StatusNotFound, map[string]string{"detail": fmt.Sprintf("book %d not found", id)})
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(http.StatusOK, existing)
	case http.MethodPut:
		var b map[string]any
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			writeJSON(http.StatusBadRequest, map[string]string{"detail": "invalid body"})
			return
		}
		if bid, ok := b["id"].(float64); !ok || int(bid) != id {
			writeJSON(http.StatusBadRequest, map[string]string{"detail": "id mismatch"})
			return
		}
		for k, v := range b {
			existing[k] = v
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		delete(s.books, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func setupStack(t *testing.T) (*client.Client, *server.MCPServer) {
	t.Helper()

	backend := httptest.NewServer(&booksStore{nextID: 1, books: map[int]map[string]any{}})
	t.Cleanup(backend.Close)

	registry, err := tools.NewRegistry(books.NewClient(backend.URL, nil, zap.NewNop()))
	require.NoError(t, err)
	dispatcher := tools.NewDispatcher(registry, nil, zap.NewNop())

	mcpServer := server.NewMCPServer("Test booksmcp", "0.0.1", server.WithToolCapabilities(false))
	require.NoError(t, tools.RegisterMCPTools(mcpServer, dispatcher))

	s, err := api.NewServer(&api.ServerOptions{Dispatcher: dispatcher, MCPServer: mcpServer})
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	return client.NewClient(srv.URL, nil), mcpServer
}

func TestBooksLifecycleIntegration(t *testing.T) {
	c, _ := setupStack(t)

	results, err := c.CallTools([]types.ToolCallRequest{
		{Name: "create_book", Parameters: map[string]any{"book_data": map[string]any{
			"title": "Dune", "author": "Frank Herbert", "publishedDate": "1965-08-01T00:00:00Z",
		}}},
		{Name: "create_book", Parameters: map[string]any{"book_data": map[string]any{"title": "No Author"}}},
		{Name: "list_books"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	created, ok := results[0].Result.(map[string]any)
	require.True(t, ok, "create_book should return the created book")
	assert.Equal(t, float64(1), created["id"])

	assert.True(t, strings.HasPrefix(results[1].Error, "Bad request: "), results[1].Error)
	assert.Nil(t, results[1].Result)

	list, ok := results[2].Result.([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)

	// book_id given as a string, book_data carrying a different id
	res, err := c.CallTool("update_book", map[string]any{
		"book_id":   "1",
		"book_data": map[string]any{"id": 42, "title": "Dune Messiah"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "Book updated successfully"}, res.Result)

	res, err = c.CallTool("get_book", map[string]any{"book_id": 1})
	require.NoError(t, err)
	book, ok := res.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Dune Messiah", book["title"])
	assert.Equal(t, "Frank Herbert", book["author"])

	results, err = c.CallTools([]types.ToolCallRequest{
		{Name: "delete_book", Parameters: map[string]any{"book_id": 1}},
		{Name: "get_book", Parameters: map[string]any{"book_id": 1}},
		{Name: "delete_book", Parameters: map[string]any{"book_id": 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "Book deleted successfully"}, results[0].Result)
	assert.Equal(t, "Book with ID 1 not found", results[1].Error)
	assert.Equal(t, "Book with ID 1 not found", results[2].Error)

	health, err := c.Health()
	require.NoError(t, err)
	assert.Equal(t, 5, health.AvailableTools)
}

func TestMCPToolsIntegration(t *testing.T) {
	_, mcpServer := setupStack(t)

	type toolResult struct {
		IsError bool `json:"isError"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}

	call := func(id int, name string, args map[string]any) toolResult {
		params, err := json.Marshal(map[string]any{"name": name, "arguments": args})
		require.NoError(t, err)
		msg := fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":%s}`, id, params)

		resp := mcpServer.HandleMessage(t.Context(), json.RawMessage(msg))
		raw, err := json.Marshal(resp)
		require.NoError(t, err)

		var out struct {
			Result toolResult `json:"result"`
		}
		require.NoError(t, json.Unmarshal(raw, &out))
		return out.Result
	}

	created := call(1, "create_book", map[string]any{
		"book_data": map[string]any{"title": "Hyperion", "author": "Dan Simmons"},
	})
	assert.False(t, created.IsError)
	require.Len(t, created.Content, 1)
	assert.Equal(t, "text", created.Content[0].Type)
	assert.JSONEq(t, `{"id":1,"title":"Hyperion","author":"Dan Simmons"}`, created.Content[0].Text)

	missing := call(2, "get_book", map[string]any{"book_id": 7})
	assert.True(t, missing.IsError)
	require.Len(t, missing.Content, 1)
	assert.Equal(t, "Book with ID 7 not found", missing.Content[0].Text)

	invalid := call(3, "get_book", map[string]any{"book_id": "seven"})
	assert.True(t, invalid.IsError)
}
