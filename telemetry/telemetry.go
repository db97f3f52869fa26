// Package telemetry provides hierarchical timing collection for
// operations. Collectors travel through context so instrumentation never
// changes function signatures; when no collector is installed, timers are
// no-ops.
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.FromContext(ctx).Start("generate report")
//	defer timer.End()
package telemetry

import (
	"context"
	"io"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector collects operation timings.
type Collector interface {
	// Start begins timing an operation. End the returned timer when the
	// operation completes.
	Start(name string) Timer

	// Report writes the collected timings to w.
	Report(w io.Writer)
}

// Timer tracks a single operation. Timers nest via Child.
type Timer interface {
	End()
	Child(name string) Timer
}

// WithCollector installs a collector into the context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the context's collector, or a no-op collector when
// none is installed.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

type noOpCollector struct{}

func (noOpCollector) Start(name string) Timer { return noOpTimer{} }
func (noOpCollector) Report(w io.Writer)      {}

type noOpTimer struct{}

func (noOpTimer) End()                    {}
func (noOpTimer) Child(name string) Timer { return noOpTimer{} }
