package famtask

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry decodes the stored auth token as an unverified JWT and
// returns its expiry claim. This is diagnostic only: the token is
// contractually opaque, nothing is verified, and the feature is gated
// behind [TokenConfig.IntrospectExpiry] (off by default). Hosts can use it
// to prompt for re-login before a dead token starts bouncing requests.
func (e *Engine) TokenExpiry(ctx context.Context) (time.Time, error) {
	if e == nil {
		return time.Time{}, ErrEngineNotReady
	}
	if !e.config.Token.IntrospectExpiry {
		return time.Time{}, ErrTokenIntrospectionDisabled
	}

	token, err := e.store.Get(ctx, e.config.Storage.TokenKey)
	if err != nil || token == "" {
		return time.Time{}, ErrNoStoredToken
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, ErrTokenOpaque
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrTokenOpaque
	}

	return exp.Time, nil
}
