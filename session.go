package famtask

import "sync"

// sessionContainer is the single source of truth for "who is logged in".
// It starts in SessionLoading and only leaves that state through rehydrate,
// login, or an explicit clear. All mutation happens here; subscribers and
// snapshot readers get copies, never the stored value.
type sessionContainer struct {
	mu      sync.Mutex
	state   SessionState
	subs    map[uint64]func(SessionState)
	nextSub uint64
}

func newSessionContainer() *sessionContainer {
	return &sessionContainer{
		state: SessionState{Status: SessionLoading},
		subs:  make(map[uint64]func(SessionState)),
	}
}

func (c *sessionContainer) snapshot() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyState(c.state)
}

// subscribe registers fn for every subsequent state change. The returned
// cancel is idempotent. fn is invoked outside the container lock.
func (c *sessionContainer) subscribe(fn func(SessionState)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// setUser transitions to authenticated. Fired exactly once per successful
// login or token-bearing rehydrate.
func (c *sessionContainer) setUser(u *User) SessionState {
	user := *u
	c.mu.Lock()
	c.state = SessionState{Status: SessionAuthenticated, User: &user}
	state, fns := c.notifyTargetsLocked()
	c.mu.Unlock()

	dispatch(state, fns)
	return state
}

// markAnonymous transitions to anonymous and reports whether anything
// changed, making logout (and 401 clears) idempotent.
func (c *sessionContainer) markAnonymous() (SessionState, bool) {
	c.mu.Lock()
	if c.state.Status == SessionAnonymous {
		state := copyState(c.state)
		c.mu.Unlock()
		return state, false
	}
	c.state = SessionState{Status: SessionAnonymous}
	state, fns := c.notifyTargetsLocked()
	c.mu.Unlock()

	dispatch(state, fns)
	return state, true
}

func (c *sessionContainer) notifyTargetsLocked() (SessionState, []func(SessionState)) {
	fns := make([]func(SessionState), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	return copyState(c.state), fns
}

func dispatch(state SessionState, fns []func(SessionState)) {
	for _, fn := range fns {
		fn(copyState(state))
	}
}

func copyState(s SessionState) SessionState {
	if s.User == nil {
		return SessionState{Status: s.Status}
	}
	user := *s.User
	return SessionState{Status: s.Status, User: &user}
}
