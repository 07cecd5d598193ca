// Package api is the single point of outbound HTTP communication with the
// family task backend.
//
// The [Client] mirrors the interceptor model the app was built around:
// request hooks run before every outgoing call (the engine uses one to
// attach the persisted bearer token), response hooks observe every received
// response, and a 401 status invokes the injected OnUnauthorized callback
// so session state can react instead of silently rotting.
//
// Two deliberate contract notes:
//
//   - The Authorization header carries the raw token with no scheme prefix
//     by default. That is the backend's observed contract; Scheme exists so
//     a deployment can switch to "Bearer" without code changes.
//   - Nothing here retries. Server error bodies surface verbatim through
//     [Error.Message]; transport failures wrap [ErrTransport].
package api
