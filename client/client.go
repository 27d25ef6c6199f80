// Package client provides a Go client for the booksmcp HTTP API.
package client

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client is a client for the booksmcp HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new booksmcp API client.
// If httpClient is nil, http.DefaultClient is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the URL of the booksmcp server this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// constructAPIEndpoint joins the server base URL and the given endpoint path.
func (c *Client) constructAPIEndpoint(endpoint string) (string, error) {
	return url.JoinPath(c.baseURL, endpoint)
}

// newRequest creates a new HTTP request that accepts a JSON response.
func (c *Client) newRequest(method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// parseErrorResponse turns a non-successful response into an error carrying the status and body.
func (c *Client) parseErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("request failed with status: %d (failed to read body: %w)", resp.StatusCode, err)
	}
	return fmt.Errorf("request failed with status: %d, message: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
