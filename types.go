package famtask

import (
	"encoding/json"
	"io"
	"time"

	internalaudit "github.com/MrEthical07/famtask/internal/audit"
	internalmetrics "github.com/MrEthical07/famtask/internal/metrics"
)

// Role is the resolved user role discriminator. The backend sends a free-form
// string; everything that is not exactly "parent" resolves to [RoleChild].
type Role uint8

const (
	// RoleChild is an exported constant or variable used by the famtask client engine.
	RoleChild Role = iota
	// RoleParent is an exported constant or variable used by the famtask client engine.
	RoleParent
)

// String describes the string operation and its observable behavior.
func (r Role) String() string {
	if r == RoleParent {
		return "parent"
	}
	return "child"
}

// roleParentValue is the only discriminator value the backend uses for the
// admin role. Any other value, including absent, means child.
const roleParentValue = "parent"

// User is the account payload returned by the login endpoint. The engine
// treats it as read-only after login; screens observe it through
// [SessionState] snapshots and never mutate it.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// RoleOf maps a user's role discriminator to a [Role]. A nil user has no
// role and resolves to [RoleChild], matching the backend default.
func RoleOf(u *User) Role {
	if u != nil && u.Role == roleParentValue {
		return RoleParent
	}
	return RoleChild
}

// SessionStatus is the tagged state of the session container.
type SessionStatus uint8

const (
	// SessionLoading is an exported constant or variable used by the famtask client engine.
	SessionLoading SessionStatus = iota
	// SessionAnonymous is an exported constant or variable used by the famtask client engine.
	SessionAnonymous
	// SessionAuthenticated is an exported constant or variable used by the famtask client engine.
	SessionAuthenticated
)

// String describes the string operation and its observable behavior.
func (s SessionStatus) String() string {
	switch s {
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "loading"
	}
}

// SessionState is an immutable snapshot of the session container.
// User is non-nil if and only if Status is [SessionAuthenticated].
type SessionState struct {
	Status SessionStatus
	User   *User
}

// LoginResult is returned by [Engine.Login]. Token is the raw bearer value
// the backend issued; it is already persisted when Login returns.
type LoginResult struct {
	Token string
	User  *User
}

// Todo is a single task row as the backend serializes it.
type Todo struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ChildSummary is one row of the parent's children list, including the
// aggregate todo counters the admin home screen renders.
type ChildSummary struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	TodoCount int    `json:"todoCount"`
	DoneCount int    `json:"doneCount"`
}

// ChildDetails is the single-child drilldown: the child account plus its
// current todos.
type ChildDetails struct {
	Child ChildSummary `json:"child"`
	Todos []Todo       `json:"todos"`
}

// Notification is one delivered reminder row.
type Notification struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// ReminderRequest is the payload for [Engine.SendReminder].
type ReminderRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ForChild     bool     `json:"forChild"`
	ReminderType string   `json:"ReminderType"`
	SendTo       []string `json:"sendTo"`
}

// Stats is the per-child aggregate the stats screen consumes. The backend
// shape varies by requested type, so the series stays loosely typed.
type Stats struct {
	UserID string          `json:"userId"`
	Type   string          `json:"type"`
	Series json.RawMessage `json:"series"`
}

// Profile is the authenticated account's own profile payload.
type Profile struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricID identifies a specific counter or histogram bucket in the
// in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricLoginSuccess is an exported constant or variable used by the famtask client engine.
	MetricLoginSuccess = internalmetrics.MetricLoginSuccess
	// MetricLoginFailure is an exported constant or variable used by the famtask client engine.
	MetricLoginFailure = internalmetrics.MetricLoginFailure
	// MetricLoginRejected is an exported constant or variable used by the famtask client engine.
	MetricLoginRejected = internalmetrics.MetricLoginRejected
	// MetricLogout is an exported constant or variable used by the famtask client engine.
	MetricLogout = internalmetrics.MetricLogout
	// MetricSessionRehydrated is an exported constant or variable used by the famtask client engine.
	MetricSessionRehydrated = internalmetrics.MetricSessionRehydrated
	// MetricSessionRevoked is an exported constant or variable used by the famtask client engine.
	MetricSessionRevoked = internalmetrics.MetricSessionRevoked
	// MetricRequestFailure is an exported constant or variable used by the famtask client engine.
	MetricRequestFailure = internalmetrics.MetricRequestFailure
	// MetricNetworkFailure is an exported constant or variable used by the famtask client engine.
	MetricNetworkFailure = internalmetrics.MetricNetworkFailure
	// MetricPushRegistered is an exported constant or variable used by the famtask client engine.
	MetricPushRegistered = internalmetrics.MetricPushRegistered
	// MetricPushPermissionDenied is an exported constant or variable used by the famtask client engine.
	MetricPushPermissionDenied = internalmetrics.MetricPushPermissionDenied
	// MetricPushSaveFailure is an exported constant or variable used by the famtask client engine.
	MetricPushSaveFailure = internalmetrics.MetricPushSaveFailure
	// MetricRequestLatency is an exported constant or variable used by the famtask client engine.
	MetricRequestLatency = internalmetrics.MetricRequestLatency
)

// Metrics holds atomic counters and optional latency histograms.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a new [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled:       cfg.Enabled,
		EnableLatency: cfg.EnableLatencyHistograms,
	})
}
