// Package prometheus provides Prometheus collectors for famtask metrics.
//
// [NewPrometheusExporter] accepts a [famtask.Engine] and exposes an [http.Handler]
// that renders all famtask counters and the latency histogram in Prometheus
// text exposition format. Counter names are prefixed famtask_*_total; the
// single histogram is famtask_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
