package internaldefs

import (
	famtask "github.com/MrEthical07/famtask"
)

// CounterDef defines a public type used by famtask APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   famtask.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by famtask APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   famtask.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the famtask client engine.
var CounterDefs = []CounterDef{
	{ID: famtask.MetricLoginSuccess, Name: "famtask_login_success_total", Help: "Successful login attempts."},
	{ID: famtask.MetricLoginFailure, Name: "famtask_login_failure_total", Help: "Login attempts rejected by the backend or lost to transport."},
	{ID: famtask.MetricLoginRejected, Name: "famtask_login_rejected_total", Help: "Login attempts rejected client-side before any network call."},
	{ID: famtask.MetricLogout, Name: "famtask_logout_total", Help: "Explicit logout operations that cleared a session."},
	{ID: famtask.MetricSessionRehydrated, Name: "famtask_session_rehydrated_total", Help: "Completed session rehydrations."},
	{ID: famtask.MetricSessionRevoked, Name: "famtask_session_revoked_total", Help: "Sessions cleared after an unauthorized response."},
	{ID: famtask.MetricRequestFailure, Name: "famtask_request_failure_total", Help: "Error responses received from the backend."},
	{ID: famtask.MetricNetworkFailure, Name: "famtask_network_failure_total", Help: "Requests that produced no response at all."},
	{ID: famtask.MetricPushRegistered, Name: "famtask_push_registered_total", Help: "Device push tokens saved to the backend."},
	{ID: famtask.MetricPushPermissionDenied, Name: "famtask_push_permission_denied_total", Help: "Push registration flows aborted on permission denial."},
	{ID: famtask.MetricPushSaveFailure, Name: "famtask_push_save_failure_total", Help: "Failed device token save calls."},
}

// HistogramDefs is an exported constant or variable used by the famtask client engine.
var HistogramDefs = []HistogramDef{
	{ID: famtask.MetricRequestLatency, Name: "famtask_request_latency_seconds", Help: "API round-trip latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the famtask client engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
