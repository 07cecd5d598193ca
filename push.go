package famtask

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// PermissionStatus is the notification permission state reported by the
// device layer.
type PermissionStatus uint8

const (
	// PermissionUndetermined is an exported constant or variable used by the famtask client engine.
	PermissionUndetermined PermissionStatus = iota
	// PermissionGranted is an exported constant or variable used by the famtask client engine.
	PermissionGranted
	// PermissionDenied is an exported constant or variable used by the famtask client engine.
	PermissionDenied
)

// PushProvider abstracts the platform notification service. Real hosts
// wire the device SDK behind it; tests use fakes.
type PushProvider interface {
	// Permission reports the current permission state without prompting.
	Permission(ctx context.Context) (PermissionStatus, error)
	// RequestPermission prompts the user and reports the resulting state.
	RequestPermission(ctx context.Context) (PermissionStatus, error)
	// DeviceToken obtains the device push token. Ephemeral: re-acquired
	// each app start, never persisted locally.
	DeviceToken(ctx context.Context) (string, error)
}

// pushRegistrar enforces at-most-one save attempt per (userID, token) pair
// for the engine lifetime. The backend save is an idempotent upsert, so a
// duplicate send would be harmless, just wasteful.
type pushRegistrar struct {
	mu   sync.Mutex
	sent map[string]struct{}
}

func newPushRegistrar() *pushRegistrar {
	return &pushRegistrar{
		sent: make(map[string]struct{}),
	}
}

// markIfNew records the pair and reports whether it was unseen. Marking
// happens before the save attempt: the invariant is one attempt, not one
// success.
func (r *pushRegistrar) markIfNew(userID, token string) bool {
	key := userID + "\x00" + token
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, seen := r.sent[key]; seen {
		return false
	}
	r.sent[key] = struct{}{}
	return true
}

// RegisterPush runs the push registration flow: permission check (prompting
// if undetermined), device token acquisition, then one token-save call for
// the authenticated user. Denied permission and save failures are surfaced
// to the caller but never retried here; push delivery is best-effort.
func (e *Engine) RegisterPush(ctx context.Context) error {
	if e == nil || e.session == nil {
		return ErrEngineNotReady
	}
	if e.push == nil {
		return ErrPushNotConfigured
	}

	snap := e.session.snapshot()
	if snap.Status != SessionAuthenticated || snap.User == nil {
		return ErrNotAuthenticated
	}
	userID := snap.User.ID

	status, err := e.push.Permission(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPushTokenUnavailable, err)
	}
	if status != PermissionGranted {
		status, err = e.push.RequestPermission(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPushTokenUnavailable, err)
		}
	}
	if status != PermissionGranted {
		e.metricInc(MetricPushPermissionDenied)
		e.emitAudit(ctx, auditEventPushPermissionDenied, false, userID, ErrPushPermissionDenied, nil)
		return ErrPushPermissionDenied
	}

	token, err := e.push.DeviceToken(ctx)
	if err != nil || token == "" {
		return fmt.Errorf("%w: %v", ErrPushTokenUnavailable, err)
	}

	if !e.registrar.markIfNew(userID, token) {
		return nil
	}

	if err := e.SaveDeviceToken(ctx, userID, token); err != nil {
		e.metricInc(MetricPushSaveFailure)
		e.emitAudit(ctx, auditEventPushSaveFailure, false, userID, err, nil)
		return err
	}

	e.metricInc(MetricPushRegistered)
	e.emitAudit(ctx, auditEventPushTokenSaved, true, userID, nil, nil)
	return nil
}

// registerPushBestEffort backs the post-login auto registration. Push is
// never load-bearing, so every failure ends in a log line.
func (e *Engine) registerPushBestEffort() {
	if err := e.RegisterPush(context.Background()); err != nil {
		log.Printf("famtask: push registration skipped: %v", err)
	}
}
