package tools

import (
	"context"

	"github.com/booksmcp/booksmcp/pkg/types"
)

// BooksAPI is the backend the book tools delegate to.
// It is satisfied by *books.Client.
type BooksAPI interface {
	ListBooks(ctx context.Context) *types.ToolCallResult
	CreateBook(ctx context.Context, book map[string]any) *types.ToolCallResult
	GetBook(ctx context.Context, id int) *types.ToolCallResult
	UpdateBook(ctx context.Context, id int, book map[string]any) *types.ToolCallResult
	DeleteBook(ctx context.Context, id int) *types.ToolCallResult
}

// Handler executes one tool call. It always returns an envelope, never nil.
type Handler interface {
	Call(ctx context.Context, params map[string]any) *types.ToolCallResult
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, params map[string]any) *types.ToolCallResult

// Call calls f(ctx, params).
func (f HandlerFunc) Call(ctx context.Context, params map[string]any) *types.ToolCallResult {
	return f(ctx, params)
}

// newHandler returns the handler for kind, bound to api.
func newHandler(kind Kind, api BooksAPI) Handler {
	switch kind {
	case KindListBooks:
		return HandlerFunc(func(ctx context.Context, _ map[string]any) *types.ToolCallResult {
			return api.ListBooks(ctx)
		})

	case KindCreateBook:
		return HandlerFunc(func(ctx context.Context, params map[string]any) *types.ToolCallResult {
			var p createBookParams
			if err := decodeParams(params, &p, "book_data"); err != nil {
				return invalidInput(kind, err)
			}
			return api.CreateBook(ctx, p.BookData)
		})

	case KindGetBook:
		return HandlerFunc(func(ctx context.Context, params map[string]any) *types.ToolCallResult {
			var p bookIDParams
			if err := decodeParams(params, &p, "book_id"); err != nil {
				return invalidInput(kind, err)
			}
			return api.GetBook(ctx, p.BookID)
		})

	case KindUpdateBook:
		return HandlerFunc(func(ctx context.Context, params map[string]any) *types.ToolCallResult {
			var p updateBookParams
			if err := decodeParams(params, &p, "book_id", "book_data"); err != nil {
				return invalidInput(kind, err)
			}
			return api.UpdateBook(ctx, p.BookID, p.BookData)
		})

	case KindDeleteBook:
		return HandlerFunc(func(ctx context.Context, params map[string]any) *types.ToolCallResult {
			var p bookIDParams
			if err := decodeParams(params, &p, "book_id"); err != nil {
				return invalidInput(kind, err)
			}
			return api.DeleteBook(ctx, p.BookID)
		})

	default:
		return nil
	}
}

func invalidInput(kind Kind, err error) *types.ToolCallResult {
	return types.NewToolCallError(types.ErrorKindInvalidInput, "Invalid input for %s: %v", kind, err)
}
