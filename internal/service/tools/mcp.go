package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/booksmcp/booksmcp/pkg/types"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools adds every tool of the dispatcher's registry to s.
// Calls made over MCP go through the same dispatcher as batch calls made over the REST API.
func RegisterMCPTools(s *server.MCPServer, d *Dispatcher) error {
	if s == nil {
		return fmt.Errorf("mcp server must not be nil")
	}
	for _, def := range d.registry.Definitions() {
		s.AddTool(convertToolDefinitionToMcpObject(def), d.mcpToolCallHandler(def.Name))
	}
	return nil
}

// mcpToolCallHandler returns an mcp-go handler that executes the named tool.
// Envelope errors become tool results with isError set, so an MCP client sees the same
// message a REST client would; they are never returned as protocol errors.
func (d *Dispatcher) mcpToolCallHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := d.Call(ctx, types.ToolCallRequest{
			Name:       name,
			Parameters: request.GetArguments(),
		})
		if res.IsError() {
			return mcp.NewToolResultError(res.Error), nil
		}

		text, err := json.Marshal(res.Result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result of %s: %v", name, err)), nil
		}
		return mcp.NewToolResultText(string(text)), nil
	}
}

// convertToolDefinitionToMcpObject converts a catalog definition to a mcp.Tool object
func convertToolDefinitionToMcpObject(def types.ToolDefinition) mcp.Tool {
	t := mcp.Tool{
		Name:        def.Name,
		Description: def.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       def.InputSchema.Type,
			Properties: def.InputSchema.Properties,
			Required:   def.InputSchema.Required,
		},
	}
	if a := def.Annotations; a != nil {
		t.Annotations = mcp.ToolAnnotation{
			ReadOnlyHint:    boolPtr(a.ReadOnly),
			DestructiveHint: boolPtr(a.Destructive),
			IdempotentHint:  boolPtr(a.Idempotent),
		}
	}
	return t
}

func boolPtr(b bool) *bool {
	return &b
}
