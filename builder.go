package famtask

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/famtask/api"
	internalaudit "github.com/MrEthical07/famtask/internal/audit"
	"github.com/MrEthical07/famtask/storage"
)

// Builder defines a public type used by famtask APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	store      storage.Store
	redis      *redis.Client
	httpClient *http.Client

	push      PushProvider
	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL sets the backend endpoint without replacing the whole config.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithStore installs the persisted session store. Takes precedence over
// WithRedis when both are set.
func (b *Builder) WithStore(store storage.Store) *Builder {
	b.store = store
	return b
}

// WithRedis backs the persisted session store with a Redis client, keyed
// under Storage.RedisPrefix.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient overrides the transport used for API calls. The client is
// used as-is; its Timeout is not adjusted.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithPushProvider installs the platform notification layer. Without one,
// [Engine.RegisterPush] returns [ErrPushNotConfigured] and login never
// spawns the background registration.
func (b *Builder) WithPushProvider(p PushProvider) *Builder {
	b.push = p
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = api.DefaultTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// -------- PERSISTED STORE --------
	store := b.store
	if store == nil {
		if b.redis == nil {
			return nil, errors.New("store or redis client required")
		}
		store = storage.NewRedis(b.redis, cfg.Storage.RedisPrefix)
	}

	// -------- API CLIENT --------
	client, err := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Scheme:  cfg.API.AuthScheme,
		Client:  b.httpClient,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:    cfg,
		store:     store,
		api:       client,
		session:   newSessionContainer(),
		push:      b.push,
		registrar: newPushRegistrar(),
		deviceID:  uuid.NewString(),
	}

	engine.audit = internalaudit.NewDispatcher(internalaudit.DispatcherConfig{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	client.SetTokenSource(engine.storedToken)
	client.SetOnUnauthorized(engine.handleUnauthorized)
	client.AddRequestHook(func(_ context.Context, req *http.Request) error {
		req.Header.Set("X-Device-Id", engine.deviceID)
		return nil
	})

	b.built = true

	return engine, nil
}
