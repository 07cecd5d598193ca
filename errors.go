package famtask

import "errors"

var (
	// ErrInvalidEmail is an exported constant or variable used by the famtask client engine.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrPasswordTooShort is an exported constant or variable used by the famtask client engine.
	ErrPasswordTooShort = errors.New("password too short")
	// ErrUnauthorized is an exported constant or variable used by the famtask client engine.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotAuthenticated is an exported constant or variable used by the famtask client engine.
	ErrNotAuthenticated = errors.New("no authenticated session")
	// ErrLoginMalformed is an exported constant or variable used by the famtask client engine.
	ErrLoginMalformed = errors.New("login response missing token or user")
	// ErrTokenOpaque is an exported constant or variable used by the famtask client engine.
	ErrTokenOpaque = errors.New("stored token is not an inspectable JWT")
	// ErrTokenIntrospectionDisabled is an exported constant or variable used by the famtask client engine.
	ErrTokenIntrospectionDisabled = errors.New("token introspection disabled")
	// ErrNoStoredToken is an exported constant or variable used by the famtask client engine.
	ErrNoStoredToken = errors.New("no stored token")
	// ErrPushNotConfigured is an exported constant or variable used by the famtask client engine.
	ErrPushNotConfigured = errors.New("push provider not configured")
	// ErrPushPermissionDenied is an exported constant or variable used by the famtask client engine.
	ErrPushPermissionDenied = errors.New("push permission denied")
	// ErrPushTokenUnavailable is an exported constant or variable used by the famtask client engine.
	ErrPushTokenUnavailable = errors.New("device push token unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the famtask client engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
