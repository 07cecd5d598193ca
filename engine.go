package famtask

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/MrEthical07/famtask/api"
	internalaudit "github.com/MrEthical07/famtask/internal/audit"
	"github.com/MrEthical07/famtask/storage"
)

// Engine defines a public type used by famtask APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config    Config
	store     storage.Store
	api       *api.Client
	session   *sessionContainer
	push      PushProvider
	registrar *pushRegistrar
	audit     *internalaudit.Dispatcher
	metrics   *Metrics
	deviceID  string
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// DeviceID returns the per-install identifier generated at Build. It is
// sent as X-Device-Id on every request and stamped into audit events.
func (e *Engine) DeviceID() string {
	if e == nil {
		return ""
	}
	return e.deviceID
}

// Session returns a read-only snapshot of the session container.
func (e *Engine) Session() SessionState {
	if e == nil || e.session == nil {
		return SessionState{Status: SessionLoading}
	}
	return e.session.snapshot()
}

// Subscribe registers fn for every session state change and returns an
// idempotent cancel. fn must not block; it runs on the mutating goroutine.
func (e *Engine) Subscribe(fn func(SessionState)) func() {
	if e == nil || e.session == nil {
		return func() {}
	}
	return e.session.subscribe(fn)
}

// Route resolves the navigation tree for the current session state.
func (e *Engine) Route() Route {
	return ResolveRoute(e.Session())
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// apiGet wraps every read call with latency and failure accounting.
func (e *Engine) apiGet(ctx context.Context, path string, query url.Values, out any) error {
	start := time.Now()
	err := e.api.Get(ctx, path, query, out)
	e.observeCall(err, time.Since(start))
	return err
}

func (e *Engine) apiPost(ctx context.Context, path string, body, out any) error {
	start := time.Now()
	err := e.api.Post(ctx, path, body, out)
	e.observeCall(err, time.Since(start))
	return err
}

func (e *Engine) apiDelete(ctx context.Context, path string, body, out any) error {
	start := time.Now()
	err := e.api.Delete(ctx, path, body, out)
	e.observeCall(err, time.Since(start))
	return err
}

func (e *Engine) observeCall(err error, elapsed time.Duration) {
	if e.metrics != nil {
		e.metrics.Observe(MetricRequestLatency, elapsed)
	}
	if err == nil {
		return
	}
	if errors.Is(err, api.ErrTransport) {
		e.metricInc(MetricNetworkFailure)
		return
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		e.metricInc(MetricRequestFailure)
	}
}
