package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bhushan0206/HeartAndHands/internal/cart"
	"github.com/bhushan0206/HeartAndHands/internal/metrics"
	"github.com/bhushan0206/HeartAndHands/internal/notify"
	"github.com/google/uuid"
)

type ManagerConfig struct {
	// NotifyDuration is the default auto-close delay for notifications.
	NotifyDuration time.Duration
	// IdleTTL is how long an untouched session is kept. Zero disables reaping.
	IdleTTL time.Duration
	// ReapInterval defaults to a minute.
	ReapInterval time.Duration
}

// Manager owns every live session. Order numbers are shared so they stay
// unique across visitors.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	catalog  Catalog
	numbers  *cart.OrderNumbers
	cfg      ManagerConfig
	quit     chan struct{}
	wg       sync.WaitGroup
	closed   bool
}

func NewManager(catalog Catalog, cfg ManagerConfig) *Manager {
	if cfg.NotifyDuration <= 0 {
		cfg.NotifyDuration = notify.DefaultDuration
	}
	if cfg.ReapInterval <= 0 {
		cfg.ReapInterval = time.Minute
	}
	m := &Manager{
		sessions: make(map[string]*Session),
		catalog:  catalog,
		numbers:  cart.NewOrderNumbers(),
		cfg:      cfg,
		quit:     make(chan struct{}),
	}
	if cfg.IdleTTL > 0 {
		m.wg.Add(1)
		go m.janitor()
	}
	return m
}

// Get returns the session for id, creating it if needed. An empty or
// unknown id gets a fresh session with a new id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	if s, ok := m.sessions[id]; ok {
		s.touch()
		return s, nil
	}

	s := newSession(uuid.NewString(), m.catalog, m.numbers,
		notify.WithDuration(m.cfg.NotifyDuration),
		notify.WithObserver(func(n notify.Notification) {
			metrics.Notifications.WithLabelValues(string(n.Kind)).Inc()
		}),
	)
	m.sessions[s.ID] = s
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	slog.Debug("Session created", "session", s.ID)
	return s, nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reap closes sessions that have been idle for longer than the TTL and
// returns how many were removed.
func (m *Manager) Reap(now time.Time) int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}
	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > m.cfg.IdleTTL {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		slog.Info("Reaped idle sessions", "count", len(expired))
	}
	return len(expired)
}

func (m *Manager) janitor() {
	defer m.wg.Done()
	ticker := time.NewTicker(m.cfg.ReapInterval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			m.Reap(now)
		case <-m.quit:
			return
		}
	}
}

// Close stops the janitor and tears down every session.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.quit)
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	metrics.ActiveSessions.Set(0)
	m.mu.Unlock()

	m.wg.Wait()
	for _, s := range sessions {
		s.Close()
	}
}
