package test

import (
	"context"
	"testing"

	famtask "github.com/MrEthical07/famtask"
	"github.com/MrEthical07/famtask/storage"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestChildSessionLifecycle(t *testing.T) {
	backend := newFakeBackend()
	engine, store := newE2EEngine(t, backend, nil)
	ctx := context.Background()

	// Cold start with an empty store resolves anonymous.
	if state := engine.Rehydrate(ctx); state.Status != famtask.SessionAnonymous {
		t.Fatalf("expected anonymous cold start, got %v", state.Status)
	}
	if engine.Route() != famtask.RouteUnauthenticated {
		t.Fatalf("expected login route, got %v", engine.Route())
	}

	result, err := engine.Login(ctx, "a@b.com", "1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if famtask.RoleOf(result.User) != famtask.RoleChild {
		t.Fatalf("expected child role, got %v", famtask.RoleOf(result.User))
	}
	if engine.Route() != famtask.RouteChildHome {
		t.Fatalf("expected child home, got %v", engine.Route())
	}

	if token, err := store.Get(ctx, "token"); err != nil || token != result.Token {
		t.Fatalf("expected backend token persisted, got %q (err %v)", token, err)
	}

	// The persisted token authenticates real calls.
	if _, err := engine.CreateTodo(ctx, "dishes"); err != nil {
		t.Fatalf("create todo: %v", err)
	}
	todos, err := engine.AllTodos(ctx)
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(todos) != 1 || todos[0].Title != "dishes" {
		t.Fatalf("unexpected todos: %+v", todos)
	}

	engine.Logout(ctx)
	if engine.Route() != famtask.RouteUnauthenticated {
		t.Fatalf("expected login route after logout, got %v", engine.Route())
	}
	if store.Len() != 0 {
		t.Fatalf("expected store emptied on logout, %d keys remain", store.Len())
	}
}

func TestParentLoginResolvesParentTree(t *testing.T) {
	backend := newFakeBackend()
	engine, _ := newE2EEngine(t, backend, nil)
	ctx := context.Background()

	engine.Rehydrate(ctx)
	if _, err := engine.Login(ctx, "p@b.com", "1234"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if engine.Route() != famtask.RouteParentHome {
		t.Fatalf("expected parent home, got %v", engine.Route())
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	backend := newFakeBackend()
	engine, store := newE2EEngine(t, backend, nil)
	ctx := context.Background()

	engine.Rehydrate(ctx)
	if _, err := engine.Login(ctx, "a@b.com", "1234"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Second engine over the same store models an app restart.
	restarted, err := famtask.New().
		WithBaseURL(newBackendServer(t, backend)).
		WithStore(store).
		Build()
	if err != nil {
		t.Fatalf("build restarted engine: %v", err)
	}
	defer restarted.Close()

	state := restarted.Rehydrate(ctx)
	if state.Status != famtask.SessionAuthenticated || state.User == nil || state.User.ID != "u1" {
		t.Fatalf("expected restored session, got %+v", state)
	}
	if restarted.Route() != famtask.RouteChildHome {
		t.Fatalf("expected child home after restart, got %v", restarted.Route())
	}
}

func TestRevokedTokenForcesLogin(t *testing.T) {
	backend := newFakeBackend()
	engine, store := newE2EEngine(t, backend, nil)
	ctx := context.Background()

	engine.Rehydrate(ctx)
	if _, err := engine.Login(ctx, "a@b.com", "1234"); err != nil {
		t.Fatalf("login: %v", err)
	}

	backend.revoke()
	if _, err := engine.AllTodos(ctx); err == nil {
		t.Fatal("expected revoked token to fail")
	}

	if engine.Route() != famtask.RouteUnauthenticated {
		t.Fatalf("expected login route after revocation, got %v", engine.Route())
	}
	if store.Len() != 0 {
		t.Fatalf("expected store wiped after revocation, %d keys remain", store.Len())
	}
}

func TestPushRegistrationAfterLogin(t *testing.T) {
	backend := newFakeBackend()

	provider := grantingProvider{token: "fcm-e2e"}
	server := newBackendServer(t, backend)

	cfg := famtask.DefaultConfig()
	cfg.API.BaseURL = server
	cfg.Push.AutoRegister = false

	engine, err := famtask.New().
		WithConfig(cfg).
		WithStore(storage.NewMemory()).
		WithPushProvider(provider).
		Build()
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	defer engine.Close()

	ctx := context.Background()
	engine.Rehydrate(ctx)
	if _, err := engine.Login(ctx, "a@b.com", "1234"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := engine.RegisterPush(ctx); err != nil {
		t.Fatalf("register push: %v", err)
	}
	if got := backend.savedToken("u1"); got != "fcm-e2e" {
		t.Fatalf("expected device token saved for u1, got %q", got)
	}
}

func TestRedisBackedEngine(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	backend := newFakeBackend()
	cfg := famtask.DefaultConfig()
	cfg.API.BaseURL = newBackendServer(t, backend)

	engine, err := famtask.New().WithConfig(cfg).WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("build redis engine: %v", err)
	}
	defer engine.Close()

	ctx := context.Background()
	engine.Rehydrate(ctx)
	if _, err := engine.Login(ctx, "a@b.com", "1234"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if !mr.Exists("ft:token") || !mr.Exists("ft:user") {
		t.Fatal("expected session keys written under the ft prefix")
	}

	engine.Logout(ctx)
	if mr.Exists("ft:token") || mr.Exists("ft:user") {
		t.Fatal("expected session keys removed on logout")
	}
}

type grantingProvider struct {
	token string
}

func (grantingProvider) Permission(context.Context) (famtask.PermissionStatus, error) {
	return famtask.PermissionGranted, nil
}

func (grantingProvider) RequestPermission(context.Context) (famtask.PermissionStatus, error) {
	return famtask.PermissionGranted, nil
}

func (p grantingProvider) DeviceToken(context.Context) (string, error) {
	return p.token, nil
}
