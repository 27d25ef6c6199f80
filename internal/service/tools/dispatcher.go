package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/booksmcp/booksmcp/internal/telemetry"
	"github.com/booksmcp/booksmcp/pkg/types"
	"go.uber.org/zap"
)

// unknownToolLabel replaces unregistered tool names in metrics, which would otherwise
// let clients create arbitrary label values.
const unknownToolLabel = "unknown"

// Dispatcher routes tool calls to the handlers of a Registry.
type Dispatcher struct {
	registry *Registry
	metrics  telemetry.CustomMetrics
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher over registry.
// A nil metrics or logger is replaced by a no-op implementation.
func NewDispatcher(registry *Registry, metrics telemetry.CustomMetrics, logger *zap.Logger) *Dispatcher {
	if metrics == nil {
		metrics = telemetry.NewNoopCustomMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// Registry returns the registry the dispatcher routes calls to.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch executes calls one after the other and returns one result per call.
// results[i] is always the outcome of calls[i]; a failed call never prevents the
// remaining calls from running.
func (d *Dispatcher) Dispatch(ctx context.Context, calls []types.ToolCallRequest) []types.ToolCallResult {
	results := make([]types.ToolCallResult, len(calls))
	for i, call := range calls {
		results[i] = *d.Call(ctx, call)
	}
	return results
}

// Call executes a single tool call.
func (d *Dispatcher) Call(ctx context.Context, call types.ToolCallRequest) *types.ToolCallResult {
	started := time.Now()

	t, ok := d.registry.lookup(call.Name)
	if !ok {
		res := types.NewToolCallError(types.ErrorKindUnknownTool, "Unknown tool: %s", call.Name)
		d.record(ctx, unknownToolLabel, call.Name, res, time.Since(started))
		return res
	}

	params := call.Parameters
	if params == nil {
		params = map[string]any{}
	}

	res := d.invoke(ctx, t, params)
	d.record(ctx, t.definition.Name, call.Name, res, time.Since(started))
	return res
}

// invoke runs the handler of t, converting a panic or a missing result into an error envelope.
func (d *Dispatcher) invoke(ctx context.Context, t *registeredTool, params map[string]any) (res *types.ToolCallResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool handler panicked",
				zap.String("tool", t.definition.Name),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			res = types.NewToolCallError(types.ErrorKindInternal, "Error %s: %v", t.action, r)
		}
	}()

	res = t.handler.Call(ctx, params)
	if res == nil {
		res = types.NewToolCallError(
			types.ErrorKindInternal, "Error %s: %v", t.action, fmt.Errorf("handler returned no result"),
		)
	}
	return res
}

func (d *Dispatcher) record(
	ctx context.Context, label, name string, res *types.ToolCallResult, elapsed time.Duration,
) {
	outcome := telemetry.ToolCallOutcomeSuccess
	if res.IsError() {
		outcome = telemetry.ToolCallOutcome(res.Kind)
	}
	d.metrics.RecordToolCall(ctx, label, outcome, elapsed)

	fields := []zap.Field{
		zap.String("tool", name),
		zap.String("outcome", string(outcome)),
		zap.Duration("elapsed", elapsed),
	}
	if res.IsError() {
		d.logger.Info("tool call failed", append(fields, zap.String("error", res.Error))...)
		return
	}
	d.logger.Debug("tool call succeeded", fields...)
}
