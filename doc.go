// Package famtask is the headless client engine for the family
// task-management backend. It owns everything underneath the app's screens:
// the persisted session store, the API gateway client, the observable
// session state container, role-based root routing, and device push
// registration.
//
// The package is designed for event-driven UI hosts: Engine methods are safe
// to call from multiple goroutines after initialization through
// [Builder.Build], and all state observation goes through snapshots and
// subscriptions rather than shared mutable values.
//
// # Architecture boundaries
//
// famtask is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (SessionState, Route, MetricsSnapshot, etc.). The HTTP
// gateway lives in the api subpackage, durable key-value persistence in the
// storage subpackage, and internal coordination — audit dispatch, metric
// storage — under internal/.
//
// # What this package must NOT do
//
//   - Render anything or hold navigation stacks; it only resolves which
//     tree the host should render.
//   - Talk to a real push-notification SDK; device concerns enter through
//     the [PushProvider] interface.
//   - Retry failed backend calls. Every failure is surfaced once.
//
// # Ordering contract
//
// [Engine.Rehydrate] must complete before the first [Engine.Route] decision
// is trusted. Until then the session reports [SessionLoading] and the
// router reports [RouteLoading]; the engine never guesses "logged out".
package famtask
