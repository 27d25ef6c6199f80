package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/booksmcp/booksmcp/pkg/types"
)

// Info returns the metadata the server publishes at its root endpoint.
func (c *Client) Info() (*types.ServerInfo, error) {
	var info types.ServerInfo
	if err := c.getJSON("/", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Health returns the health status of the server.
func (c *Client) Health() (*types.HealthStatus, error) {
	var status types.HealthStatus
	if err := c.getJSON("/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListTools returns all tools exposed by the server, in the order the server lists them.
func (c *Client) ListTools() ([]types.ToolDefinition, error) {
	var resp types.ToolsListResponse
	if err := c.getJSON("/tools", &resp); err != nil {
		return nil, err
	}
	return resp.Tools, nil
}

// GetTool returns the definition of the named tool.
func (c *Client) GetTool(name string) (*types.ToolDefinition, error) {
	var def types.ToolDefinition
	if err := c.getJSON("/tools/"+name, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// CallTools executes a batch of tool calls and returns one result per call, in order.
// A tool call that fails is reported in its result, not as an error.
func (c *Client) CallTools(calls []types.ToolCallRequest) ([]types.ToolCallResult, error) {
	u, _ := c.constructAPIEndpoint("/tool-calls")

	if calls == nil {
		calls = []types.ToolCallRequest{}
	}
	body, err := json.Marshal(&types.ToolCallsRequest{ToolCalls: calls})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool calls: %w", err)
	}

	req, err := c.newRequest(http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseErrorResponse(resp)
	}

	var callsResp types.ToolCallsResponse
	if err := json.NewDecoder(resp.Body).Decode(&callsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(callsResp.ToolCallResults) != len(calls) {
		return nil, fmt.Errorf(
			"server returned %d results for %d tool calls", len(callsResp.ToolCallResults), len(calls),
		)
	}
	return callsResp.ToolCallResults, nil
}

// CallTool executes a single tool call.
func (c *Client) CallTool(name string, params map[string]any) (*types.ToolCallResult, error) {
	results, err := c.CallTools([]types.ToolCallRequest{{Name: name, Parameters: params}})
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

func (c *Client) getJSON(endpoint string, out any) error {
	u, _ := c.constructAPIEndpoint(endpoint)

	req, err := c.newRequest(http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
