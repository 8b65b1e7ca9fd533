package widget

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cosmic-portfolio/internal/history"
	"cosmic-portfolio/internal/storage"
)

// Registry owns the live widget sessions of a server process.
type Registry struct {
	local   Responder
	ai      Responder
	greeter Greeter
	logs    *history.Manager
	opts    []Option
	logger  *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Controller
}

type RegistryConfig struct {
	Local    Responder
	AI       Responder // nil disables ai mode
	Greeter  Greeter
	Delay    Delay
	Recorder storage.Recorder
	Prompts  map[Action]string
	Logger   *zap.Logger
}

func NewRegistry(cfg RegistryConfig) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		local:   cfg.Local,
		ai:      cfg.AI,
		greeter: cfg.Greeter,
		logs:    history.NewManager(),
		opts: []Option{
			WithDelay(cfg.Delay),
			WithRecorder(cfg.Recorder),
			WithPrompts(cfg.Prompts),
			WithLogger(logger),
		},
		logger:   logger,
		sessions: make(map[string]*Controller),
	}
}

// Create starts a new session. Asking for ai mode without a relay falls
// back to local answers.
func (r *Registry) Create(page Page, mode Mode, extra ...Option) *Controller {
	id := uuid.NewString()
	responder := r.local
	if mode == ModeAI && r.ai != nil {
		responder = r.ai
	} else {
		mode = ModeLocal
	}
	opts := append([]Option{WithLog(r.logs.Open(id))}, r.opts...)
	c := NewController(id, page, mode, responder, r.greeter, append(opts, extra...)...)

	r.mu.Lock()
	r.sessions[id] = c
	r.mu.Unlock()
	r.logger.Debug("widget session created", zap.String("session", id), zap.String("page", string(page)), zap.String("mode", string(mode)))
	return c
}

func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	return c, nil
}

// Remove tears the session down and forgets its log.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	c, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrUnknownSession
	}
	c.Teardown()
	r.logs.Reset(id)
	return nil
}

// SweepIdle removes sessions inactive for longer than ttl and returns how
// many were removed.
func (r *Registry) SweepIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	var stale []string
	r.mu.RLock()
	for id, c := range r.sessions {
		if c.LastActive().Before(cutoff) && c.Pending() == 0 {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	n := 0
	for _, id := range stale {
		if r.Remove(id) == nil {
			n++
		}
	}
	if n > 0 {
		r.logger.Info("idle widget sessions removed", zap.Int("count", n))
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close tears every session down.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Controller)
	r.mu.Unlock()
	for id, c := range all {
		c.Teardown()
		r.logs.Reset(id)
	}
}
