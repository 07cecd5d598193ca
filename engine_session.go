package famtask

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/MrEthical07/famtask/storage"
)

// persistedSession is the on-disk session blob, kept shape-compatible with
// the app's persisted slice: {"value": <user-or-null>}.
type persistedSession struct {
	Value *User `json:"value"`
}

// Rehydrate restores the persisted session into memory. It must run before
// the first routing decision; until it returns, [Engine.Route] reports
// RouteLoading. Storage failures are swallowed: any unreadable value
// resolves to the anonymous flow, never a crash.
func (e *Engine) Rehydrate(ctx context.Context) SessionState {
	if e == nil || e.session == nil {
		return SessionState{Status: SessionLoading}
	}

	token, err := e.store.Get(ctx, e.config.Storage.TokenKey)
	if err != nil || token == "" {
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			e.emitAudit(ctx, auditEventStorageDegraded, false, "", err, nil)
		}
		state, _ := e.session.markAnonymous()
		e.metricInc(MetricSessionRehydrated)
		e.emitAudit(ctx, auditEventRehydrateComplete, true, "", nil, func() map[string]string {
			return map[string]string{"outcome": "anonymous"}
		})
		return state
	}

	blob, err := e.store.Get(ctx, e.config.Storage.SessionKey)
	if err != nil {
		// Token without a readable user blob: the role is unknown, so the
		// router must not guess a tree. Degrade to anonymous; the token
		// stays put and the next 401 or login will reconcile storage.
		if !errors.Is(err, storage.ErrNotFound) {
			e.emitAudit(ctx, auditEventStorageDegraded, false, "", err, nil)
		}
		state, _ := e.session.markAnonymous()
		e.metricInc(MetricSessionRehydrated)
		e.emitAudit(ctx, auditEventRehydrateComplete, true, "", nil, func() map[string]string {
			return map[string]string{"outcome": "anonymous", "reason": "missing_user_blob"}
		})
		return state
	}

	var persisted persistedSession
	if err := json.Unmarshal([]byte(blob), &persisted); err != nil || persisted.Value == nil || persisted.Value.ID == "" {
		state, _ := e.session.markAnonymous()
		e.metricInc(MetricSessionRehydrated)
		e.emitAudit(ctx, auditEventRehydrateComplete, true, "", err, func() map[string]string {
			return map[string]string{"outcome": "anonymous", "reason": "corrupt_user_blob"}
		})
		return state
	}

	state := e.session.setUser(persisted.Value)
	e.metricInc(MetricSessionRehydrated)
	e.emitAudit(ctx, auditEventRehydrateComplete, true, persisted.Value.ID, nil, func() map[string]string {
		return map[string]string{"outcome": "authenticated", "role": RoleOf(persisted.Value).String()}
	})
	return state
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse tolerates both observed backend variants: token at the top
// level next to the user payload, or nested inside data. Normalization
// happens here and nowhere else.
type loginResponse struct {
	Token string `json:"token"`
	Data  struct {
		User
		Token string `json:"token"`
	} `json:"data"`
}

// Login authenticates against POST /api/auth/login. Client-side validation
// runs first; an invalid email or short password never reaches the network.
// On success the token and session blob are persisted, the in-memory
// session flips to authenticated exactly once, and, when configured, the
// push registration flow fires in the background.
func (e *Engine) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if e == nil || e.session == nil {
		return nil, ErrEngineNotReady
	}

	if err := ValidateCredentials(email, password); err != nil {
		e.metricInc(MetricLoginRejected)
		e.emitAudit(ctx, auditEventLoginRejected, false, "", err, func() map[string]string {
			return map[string]string{"identifier": email}
		})
		return nil, err
	}

	var resp loginResponse
	if err := e.apiPost(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", err, func() map[string]string {
			return map[string]string{"identifier": email}
		})
		return nil, err
	}

	token := resp.Token
	if token == "" {
		token = resp.Data.Token
	}
	user := resp.Data.User
	if token == "" || user.ID == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", ErrLoginMalformed, func() map[string]string {
			return map[string]string{"identifier": email}
		})
		return nil, ErrLoginMalformed
	}

	if err := e.store.Set(ctx, e.config.Storage.TokenKey, token); err != nil {
		// Persisting failed, but the credentials were accepted; keep the
		// in-memory session alive for this run and record the degradation.
		e.emitAudit(ctx, auditEventStorageDegraded, false, user.ID, err, func() map[string]string {
			return map[string]string{"key": e.config.Storage.TokenKey}
		})
	}
	if err := e.persistSession(ctx, &user); err != nil {
		e.emitAudit(ctx, auditEventStorageDegraded, false, user.ID, err, func() map[string]string {
			return map[string]string{"key": e.config.Storage.SessionKey}
		})
	}

	e.session.setUser(&user)
	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, user.ID, nil, func() map[string]string {
		return map[string]string{"role": RoleOf(&user).String()}
	})

	if e.push != nil && e.config.Push.AutoRegister {
		go e.registerPushBestEffort()
	}

	return &LoginResult{Token: token, User: &user}, nil
}

// Logout clears the session. Idempotent: a second call observes the
// anonymous state and does nothing. Storage failures degrade to a logged
// audit event; the in-memory session is cleared regardless.
func (e *Engine) Logout(ctx context.Context) {
	if e == nil || e.session == nil {
		return
	}

	prior := e.session.snapshot()

	if err := e.store.Delete(ctx, e.config.Storage.TokenKey); err != nil {
		e.emitAudit(ctx, auditEventStorageDegraded, false, "", err, func() map[string]string {
			return map[string]string{"key": e.config.Storage.TokenKey}
		})
	}
	if err := e.store.Delete(ctx, e.config.Storage.SessionKey); err != nil {
		e.emitAudit(ctx, auditEventStorageDegraded, false, "", err, func() map[string]string {
			return map[string]string{"key": e.config.Storage.SessionKey}
		})
	}

	if _, changed := e.session.markAnonymous(); changed {
		var userID string
		if prior.User != nil {
			userID = prior.User.ID
		}
		e.metricInc(MetricLogout)
		e.emitAudit(ctx, auditEventLogout, true, userID, nil, nil)
	}
}

// handleUnauthorized is the injected 401 callback on the API client. The
// whole persisted store is wiped (observed app behavior) and the in-memory
// session is cleared so the router re-resolves to Unauthenticated without
// any navigation logic here.
func (e *Engine) handleUnauthorized(ctx context.Context) {
	if e == nil || e.session == nil {
		return
	}

	if err := e.store.Clear(ctx); err != nil {
		e.emitAudit(ctx, auditEventStorageDegraded, false, "", err, nil)
	}

	prior := e.session.snapshot()
	if _, changed := e.session.markAnonymous(); changed {
		var userID string
		if prior.User != nil {
			userID = prior.User.ID
		}
		e.metricInc(MetricSessionRevoked)
		e.emitAudit(ctx, auditEventSessionRevoked, true, userID, ErrUnauthorized, nil)
	}
}

// storedToken is the API client's TokenSource: the token is read from the
// persisted store on every outgoing request, never cached in memory.
func (e *Engine) storedToken(ctx context.Context) (string, error) {
	token, err := e.store.Get(ctx, e.config.Storage.TokenKey)
	if err != nil {
		return "", nil // no value, request goes out unauthenticated
	}
	return token, nil
}

func (e *Engine) persistSession(ctx context.Context, u *User) error {
	data, err := json.Marshal(persistedSession{Value: u})
	if err != nil {
		return err
	}
	return e.store.Set(ctx, e.config.Storage.SessionKey, string(data))
}
