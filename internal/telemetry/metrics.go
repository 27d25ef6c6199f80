package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ToolCallOutcome is the outcome label attached to tool call metrics.
// Failed calls are labelled with their error kind.
type ToolCallOutcome string

const ToolCallOutcomeSuccess ToolCallOutcome = "success"

// CustomMetrics records the application-level metrics of booksmcp.
type CustomMetrics interface {
	RecordToolCall(ctx context.Context, toolName string, outcome ToolCallOutcome, elapsed time.Duration)
}

type noopCustomMetrics struct{}

// NewNoopCustomMetrics returns a CustomMetrics that discards everything.
func NewNoopCustomMetrics() CustomMetrics {
	return noopCustomMetrics{}
}

func (noopCustomMetrics) RecordToolCall(context.Context, string, ToolCallOutcome, time.Duration) {}

type otelCustomMetrics struct {
	toolCalls        metric.Int64Counter
	toolCallDuration metric.Float64Histogram
}

// NewOtelCustomMetrics creates the tool call instruments on meter.
func NewOtelCustomMetrics(meter metric.Meter) (CustomMetrics, error) {
	toolCalls, err := meter.Int64Counter(
		"booksmcp_tool_calls_total",
		metric.WithDescription("Number of tool calls, by tool and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool calls counter: %w", err)
	}

	toolCallDuration, err := meter.Float64Histogram(
		"booksmcp_tool_call_duration_seconds",
		metric.WithDescription("Latency of tool calls, including the backend request"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool call duration histogram: %w", err)
	}

	return &otelCustomMetrics{
		toolCalls:        toolCalls,
		toolCallDuration: toolCallDuration,
	}, nil
}

func (m *otelCustomMetrics) RecordToolCall(
	ctx context.Context, toolName string, outcome ToolCallOutcome, elapsed time.Duration,
) {
	attrs := metric.WithAttributes(
		attribute.String("tool", toolName),
		attribute.String("outcome", string(outcome)),
	)
	m.toolCalls.Add(ctx, 1, attrs)
	m.toolCallDuration.Record(ctx, elapsed.Seconds(), attrs)
}
