package types

import "fmt"

// ToolInputSchema defines the schema for the input parameters of a tool
type ToolInputSchema struct {
	Type       string         `json:"type" yaml:"type"`
	Properties map[string]any `json:"properties" yaml:"properties"`
	Required   []string       `json:"required" yaml:"required"`
}

// ToolAnnotations are behavioural hints about a tool, surfaced to clients that want to
// decide whether a call is safe to make without confirmation.
type ToolAnnotations struct {
	ReadOnly    bool `json:"read_only" yaml:"read_only"`
	Destructive bool `json:"destructive" yaml:"destructive"`
	Idempotent  bool `json:"idempotent" yaml:"idempotent"`
}

// ToolDefinition describes a tool exposed by the server.
type ToolDefinition struct {
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	InputSchema ToolInputSchema  `json:"input_schema" yaml:"input_schema"`
	Annotations *ToolAnnotations `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// ToolCallRequest is a single named call with its parameters.
type ToolCallRequest struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// ErrorKind classifies why a tool call failed.
// It is never serialized, callers only ever see the error message.
type ErrorKind string

const (
	ErrorKindNone         ErrorKind = ""
	ErrorKindUnknownTool  ErrorKind = "unknown_tool"
	ErrorKindInvalidInput ErrorKind = "invalid_input"
	ErrorKindBadRequest   ErrorKind = "bad_request"
	ErrorKindNotFound     ErrorKind = "not_found"
	ErrorKindAPI          ErrorKind = "api_error"
	ErrorKindConnectivity ErrorKind = "connectivity"
	ErrorKindInternal     ErrorKind = "internal"
)

// ToolCallResult is the envelope returned for every tool call.
// A successful call carries Result (which may legitimately be null) and no Error.
// A failed call carries Error and a null Result.
type ToolCallResult struct {
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`

	Kind ErrorKind `json:"-"`
}

// NewToolCallResult returns a successful envelope carrying v.
func NewToolCallResult(v any) *ToolCallResult {
	return &ToolCallResult{Result: v}
}

// NewToolCallError returns a failed envelope of the given kind.
func NewToolCallError(kind ErrorKind, format string, args ...any) *ToolCallResult {
	return &ToolCallResult{
		Error: fmt.Sprintf(format, args...),
		Kind:  kind,
	}
}

// IsError reports whether the envelope describes a failed call.
func (r *ToolCallResult) IsError() bool {
	return r.Error != ""
}

// ToolCallsRequest is the body of a batch call.
// A missing tool_calls is an empty batch. Names are not validated here, an unregistered
// or empty name is reported in that call's result.
type ToolCallsRequest struct {
	ToolCalls []ToolCallRequest `json:"tool_calls"`
}

// ToolCallsResponse holds one result per requested call, in request order.
type ToolCallsResponse struct {
	ToolCallResults []ToolCallResult `json:"tool_call_results"`
}

// ToolsListResponse is the body returned by the tool discovery endpoint.
type ToolsListResponse struct {
	Tools []ToolDefinition `json:"tools"`
}
