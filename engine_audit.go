package famtask

import (
	"context"
	"time"
)

const (
	auditEventLoginSuccess         = "login_success"
	auditEventLoginFailure         = "login_failure"
	auditEventLoginRejected        = "login_rejected"
	auditEventLogout               = "logout"
	auditEventRehydrateComplete    = "rehydrate_complete"
	auditEventSessionRevoked       = "session_revoked"
	auditEventStorageDegraded      = "storage_degraded"
	auditEventPushPermissionDenied = "push_permission_denied"
	auditEventPushTokenSaved       = "push_token_saved"
	auditEventPushSaveFailure      = "push_save_failure"
)

// emitAudit queues one event. metaFn is only invoked when auditing is live,
// keeping map allocation off disabled paths.
func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	errValue error,
	metaFn func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		DeviceID:  e.deviceID,
		Success:   success,
	}
	if errValue != nil {
		event.Error = errValue.Error()
	}

	var meta map[string]string
	if metaFn != nil {
		meta = metaFn()
	}
	if v := appVersionFromContext(ctx); v != "" {
		if meta == nil {
			meta = make(map[string]string, 1)
		}
		meta["app_version"] = v
	}
	if s := screenFromContext(ctx); s != "" {
		if meta == nil {
			meta = make(map[string]string, 1)
		}
		meta["screen"] = s
	}
	event.Metadata = meta

	e.audit.Emit(ctx, event)
}
