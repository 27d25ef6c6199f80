// Package books provides a client for the backend Books REST service.
// Every operation performs exactly one HTTP request and maps its outcome to a types.ToolCallResult.
package books

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/booksmcp/booksmcp/pkg/types"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is where the Books service listens when nothing else is configured.
	DefaultBaseURL = "http://localhost:5288"

	// DefaultTimeout bounds every outbound request to the Books service.
	DefaultTimeout = 30 * time.Second
)

// Client talks to the backend Books service.
// It holds no state besides its configuration, so it is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Books service client.
// If httpClient is nil, a client with DefaultTimeout is used.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the Books service URL this client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListBooks retrieves all books.
func (c *Client) ListBooks(ctx context.Context) *types.ToolCallResult {
	resp, err := c.do(ctx, http.MethodGet, "/books", nil)
	if err != nil {
		return connectivityError(err)
	}
	if resp.status != http.StatusOK {
		return apiError(resp)
	}
	return decodeResult("retrieving books", resp)
}

// CreateBook creates a new book from the supplied fields.
func (c *Client) CreateBook(ctx context.Context, book map[string]any) *types.ToolCallResult {
	const action = "creating book"

	body, err := json.Marshal(book)
	if err != nil {
		return internalError(action, fmt.Errorf("failed to marshal book data: %w", err))
	}

	resp, err := c.do(ctx, http.MethodPost, "/books", body)
	if err != nil {
		return connectivityError(err)
	}

	switch resp.status {
	case http.StatusCreated:
		return decodeResult(action, resp)
	case http.StatusBadRequest:
		return badRequestError(resp)
	default:
		return apiError(resp)
	}
}

// GetBook retrieves a single book by its ID.
func (c *Client) GetBook(ctx context.Context, id int) *types.ToolCallResult {
	resp, err := c.do(ctx, http.MethodGet, bookPath(id), nil)
	if err != nil {
		return connectivityError(err)
	}

	switch resp.status {
	case http.StatusOK:
		return decodeResult("retrieving book", resp)
	case http.StatusNotFound:
		return notFoundError(id)
	default:
		return apiError(resp)
	}
}

// UpdateBook replaces the book identified by id.
// The id field of the request body is always set to id, whatever the caller supplied.
// Fields missing from book are passed through as-is, merging is up to the backend.
func (c *Client) UpdateBook(ctx context.Context, id int, book map[string]any) *types.ToolCallResult {
	const action = "updating book"

	payload := make(map[string]any, len(book)+1)
	for k, v := range book {
		payload[k] = v
	}
	payload["id"] = id

	body, err := json.Marshal(payload)
	if err != nil {
		return internalError(action, fmt.Errorf("failed to marshal book data: %w", err))
	}

	resp, err := c.do(ctx, http.MethodPut, bookPath(id), body)
	if err != nil {
		return connectivityError(err)
	}

	switch resp.status {
	case http.StatusNoContent:
		return types.NewToolCallResult(map[string]any{"message": "Book updated successfully"})
	case http.StatusBadRequest:
		return badRequestError(resp)
	case http.StatusNotFound:
		return notFoundError(id)
	default:
		return apiError(resp)
	}
}

// DeleteBook deletes the book identified by id.
func (c *Client) DeleteBook(ctx context.Context, id int) *types.ToolCallResult {
	resp, err := c.do(ctx, http.MethodDelete, bookPath(id), nil)
	if err != nil {
		return connectivityError(err)
	}

	switch resp.status {
	case http.StatusNoContent:
		return types.NewToolCallResult(map[string]any{"message": "Book deleted successfully"})
	case http.StatusNotFound:
		return notFoundError(id)
	default:
		return apiError(resp)
	}
}

// response is a backend response whose body has been read completely.
type response struct {
	status int
	body   []byte
}

// do sends a single request to the Books service and reads the whole response.
// A non-nil error always means the exchange itself failed (connection, timeout, TLS, body read),
// never that the backend answered with an unexpected status.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*response, error) {
	u := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request to %s: %w", u, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("books api request failed",
			zap.String("method", method),
			zap.String("url", u),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", u, err)
	}

	c.logger.Debug("books api request completed",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	return &response{status: resp.StatusCode, body: data}, nil
}

func bookPath(id int) string {
	return fmt.Sprintf("/books/%d", id)
}

func decodeResult(action string, resp *response) *types.ToolCallResult {
	var v any
	if err := json.Unmarshal(resp.body, &v); err != nil {
		return internalError(action, fmt.Errorf("failed to decode response: %w", err))
	}
	return types.NewToolCallResult(v)
}

func connectivityError(err error) *types.ToolCallResult {
	return types.NewToolCallError(types.ErrorKindConnectivity, "Failed to connect to Books API: %v", err)
}

func apiError(resp *response) *types.ToolCallResult {
	return types.NewToolCallError(types.ErrorKindAPI, "API Error: %d - %s", resp.status, resp.body)
}

func badRequestError(resp *response) *types.ToolCallResult {
	return types.NewToolCallError(types.ErrorKindBadRequest, "Bad request: %s", resp.body)
}

func notFoundError(id int) *types.ToolCallResult {
	return types.NewToolCallError(types.ErrorKindNotFound, "Book with ID %d not found", id)
}

func internalError(action string, err error) *types.ToolCallResult {
	return types.NewToolCallError(types.ErrorKindInternal, "Error %s: %v", action, err)
}
