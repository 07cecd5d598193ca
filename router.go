package famtask

import "sync"

// Route names the navigation tree the host should render. It is derived
// from [SessionState], never stored, so transitions outside the session
// lifecycle are unrepresentable.
type Route uint8

const (
	// RouteLoading is an exported constant or variable used by the famtask client engine.
	RouteLoading Route = iota
	// RouteUnauthenticated is an exported constant or variable used by the famtask client engine.
	RouteUnauthenticated
	// RouteParentHome is an exported constant or variable used by the famtask client engine.
	RouteParentHome
	// RouteChildHome is an exported constant or variable used by the famtask client engine.
	RouteChildHome
)

// String describes the string operation and its observable behavior.
func (r Route) String() string {
	switch r {
	case RouteUnauthenticated:
		return "unauthenticated"
	case RouteParentHome:
		return "parent_home"
	case RouteChildHome:
		return "child_home"
	default:
		return "loading"
	}
}

// ResolveRoute maps a session snapshot to its navigation tree:
//
//	loading                      -> RouteLoading
//	anonymous                    -> RouteUnauthenticated
//	authenticated, role "parent" -> RouteParentHome
//	authenticated, any other     -> RouteChildHome
//
// A role-specific tree is unreachable while the user is nil.
func ResolveRoute(s SessionState) Route {
	switch s.Status {
	case SessionAuthenticated:
		if s.User == nil {
			// Defensible only as a bug upstream; treat as logged out
			// rather than render a role tree with no user.
			return RouteUnauthenticated
		}
		if RoleOf(s.User) == RoleParent {
			return RouteParentHome
		}
		return RouteChildHome
	case SessionAnonymous:
		return RouteUnauthenticated
	default:
		return RouteLoading
	}
}

// Router tracks the resolved route across session changes and notifies
// listeners only when the route actually moves. It is a convenience for
// hosts that want route-level callbacks instead of re-resolving on every
// session event.
type Router struct {
	mu      sync.Mutex
	current Route
	subs    map[uint64]func(Route)
	nextSub uint64
	cancel  func()
}

// NewRouter creates a Router bound to the engine's session container. The
// initial route reflects the session state at call time. Close releases
// the subscription.
func NewRouter(e *Engine) *Router {
	r := &Router{
		current: ResolveRoute(e.Session()),
		subs:    make(map[uint64]func(Route)),
	}
	r.cancel = e.Subscribe(func(state SessionState) {
		r.advance(ResolveRoute(state))
	})
	return r
}

// Current returns the route as of the last session change.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Subscribe registers fn for route changes and returns an idempotent cancel.
func (r *Router) Subscribe(fn func(Route)) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
		})
	}
}

// Close detaches the Router from the engine.
func (r *Router) Close() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Router) advance(next Route) {
	r.mu.Lock()
	if next == r.current {
		r.mu.Unlock()
		return
	}
	r.current = next
	fns := make([]func(Route), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}
