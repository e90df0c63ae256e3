package keeper_test

import (
	"context"
	"sync"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

var (
	spanRecorderOnce sync.Once
	spanRecorder     *tracetest.SpanRecorder
)

// recordSpans installs a recording tracer provider. The global provider is
// delegated to only once per process, so it is shared by every test.
func recordSpans() *tracetest.SpanRecorder {
	spanRecorderOnce.Do(func() {
		spanRecorder = tracetest.NewSpanRecorder()
		otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder)))
	})
	return spanRecorder
}

func TestSwap_LedgerCallsRunUnderOperationSpan(t *testing.T) {
	recorder := recordSpans()

	f := setupPoolForSwaps(t, 100, 100)
	f.Fund(t, denomA, trader, math.NewInt(10))

	var seen []trace.SpanContext
	f.FailingB.Observe = func(ctx context.Context) {
		seen = append(seen, trace.SpanContextFromContext(ctx))
	}

	_, err := f.Keeper.SwapExactTokensForTokens(f.Ctx, trader, math.NewInt(10), math.ZeroInt(),
		[]string{denomA, denomB}, receiver, f.Deadline())
	require.NoError(t, err)

	// the payout leg goes through asset B
	require.Len(t, seen, 1)
	require.True(t, seen[0].IsValid())

	var name string
	for _, span := range recorder.Ended() {
		if span.SpanContext().SpanID() == seen[0].SpanID() {
			name = span.Name()
		}
	}
	require.Equal(t, "pool.swap", name)
}
