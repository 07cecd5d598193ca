package famtask

import (
	"context"
	"net/http"
	"testing"
)

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		name  string
		state SessionState
		want  Route
	}{
		{
			name:  "loading",
			state: SessionState{Status: SessionLoading},
			want:  RouteLoading,
		},
		{
			name:  "anonymous",
			state: SessionState{Status: SessionAnonymous},
			want:  RouteUnauthenticated,
		},
		{
			name:  "parent",
			state: SessionState{Status: SessionAuthenticated, User: &User{ID: "u1", Role: "parent"}},
			want:  RouteParentHome,
		},
		{
			name:  "child",
			state: SessionState{Status: SessionAuthenticated, User: &User{ID: "u1", Role: "child"}},
			want:  RouteChildHome,
		},
		{
			name:  "unknown role defaults to child",
			state: SessionState{Status: SessionAuthenticated, User: &User{ID: "u1", Role: "admin"}},
			want:  RouteChildHome,
		},
		{
			name:  "absent role defaults to child",
			state: SessionState{Status: SessionAuthenticated, User: &User{ID: "u1"}},
			want:  RouteChildHome,
		},
		{
			name:  "authenticated without user is unrenderable",
			state: SessionState{Status: SessionAuthenticated},
			want:  RouteUnauthenticated,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveRoute(tc.state); got != tc.want {
				t.Fatalf("ResolveRoute(%+v) = %v, want %v", tc.state, got, tc.want)
			}
		})
	}
}

func TestRouterNotifiesOnlyOnRouteChange(t *testing.T) {
	engine, _ := newTestEngine(t, jsonHandler(http.StatusOK, loginOK))

	router := NewRouter(engine)
	defer router.Close()

	if got := router.Current(); got != RouteLoading {
		t.Fatalf("expected initial loading route, got %v", got)
	}

	var moves []Route
	cancel := router.Subscribe(func(r Route) {
		moves = append(moves, r)
	})
	defer cancel()

	ctx := context.Background()
	engine.Rehydrate(ctx)

	if _, err := engine.Login(ctx, "a@b.com", "1234"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	engine.Logout(ctx)
	engine.Logout(ctx) // no route change, no notification

	want := []Route{RouteUnauthenticated, RouteChildHome, RouteUnauthenticated}
	if len(moves) != len(want) {
		t.Fatalf("expected %d route moves, got %v", len(want), moves)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Fatalf("move %d = %v, want %v", i, moves[i], want[i])
		}
	}
}

func TestRouterCloseDetaches(t *testing.T) {
	engine, _ := newTestEngine(t, jsonHandler(http.StatusOK, loginOK))

	router := NewRouter(engine)
	var moves int
	router.Subscribe(func(Route) { moves++ })
	router.Close()

	engine.Rehydrate(context.Background())
	if moves != 0 {
		t.Fatalf("closed router must not observe session changes, saw %d", moves)
	}
}
