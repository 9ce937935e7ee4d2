package settings

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Manager owns the current settings of a logger tree. Current is safe
// to call from any goroutine at any time; Update calls are serialised.
type Manager struct {
	mu      sync.Mutex
	current atomic.Pointer[Data]
	env     Env
	envSet  bool
	diag    io.Writer
}

// Option configures a Manager.
type Option func(*Manager)

// WithEnv uses e instead of reading the process environment.
func WithEnv(e Env) Option {
	return func(m *Manager) {
		m.env = e
		m.envSet = true
	}
}

// WithDiagnostics sets where filter diagnostics are written. The
// default is os.Stderr; nil discards them.
func WithDiagnostics(w io.Writer) Option {
	return func(m *Manager) {
		m.diag = w
	}
}

// New resolves the initial settings from in and the environment.
func New(in Input, opts ...Option) (*Manager, error) {
	m := &Manager{diag: os.Stderr}
	for _, opt := range opts {
		opt(m)
	}
	if !m.envSet {
		e, err := LoadEnv()
		if err != nil {
			return nil, err
		}
		m.env = e
	}

	data, err := Reduce(nil, in, m.env, m.diag)
	if err != nil {
		return nil, err
	}
	m.current.Store(data)
	return m, nil
}

// Current returns the settings in effect.
func (m *Manager) Current() *Data {
	return m.current.Load()
}

// Env returns the environment the manager resolved defaults from.
func (m *Manager) Env() Env {
	return m.env
}

// Update applies in on top of the current settings. On error the
// current settings are left unchanged.
func (m *Manager) Update(in Input) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := Reduce(m.current.Load(), in, m.env, m.diag)
	if err != nil {
		return err
	}
	m.current.Store(next)
	return nil
}
