// Package storefront binds the domain packages into one shopper session and
// serializes every action on it.
package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/Mansi-10-4/nova/internal/advisor"
	"github.com/Mansi-10-4/nova/internal/catalog"
	"github.com/Mansi-10-4/nova/internal/payment"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
	"github.com/Mansi-10-4/nova/pkg/kv"
	"github.com/Mansi-10-4/nova/pkg/logger"
	"github.com/Mansi-10-4/nova/pkg/metrics"
)

// Deps are the collaborators shared by every session.
type Deps struct {
	Store    kv.Store
	Products []catalog.Product
	Advisor  *advisor.Advisor
	Gateway  payment.Gateway
	Metrics  *metrics.StorefrontMetrics
	Logger   *logger.Logger
	Now      func() time.Time

	// IdleTTL evicts sessions unused for this long. Wishlist and order
	// history reload from the store; the cart does not.
	IdleTTL time.Duration

	// MaxSessions caps live sessions; the least recently used is evicted.
	MaxSessions int
}

const (
	defaultIdleTTL     = 30 * time.Minute
	defaultMaxSessions = 10000
)

type liveSession struct {
	session  *Session
	lastSeen time.Time
}

// Manager owns the live sessions of this process.
type Manager struct {
	deps      Deps
	mu        sync.Mutex
	sessions  map[string]*liveSession
	lastSweep time.Time
}

func NewManager(deps Deps) *Manager {
	if deps.Store == nil {
		deps.Store = kv.NewMemory()
	}
	if deps.Products == nil {
		deps.Products = catalog.Seed()
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.IdleTTL <= 0 {
		deps.IdleTTL = defaultIdleTTL
	}
	if deps.MaxSessions <= 0 {
		deps.MaxSessions = defaultMaxSessions
	}
	return &Manager{deps: deps, sessions: map[string]*liveSession{}, lastSweep: deps.Now()}
}

// Session returns the live session for id, restoring its wishlist and order
// history from the store on first use.
func (m *Manager) Session(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.deps.Now()
	m.sweepLocked(now)

	if live, ok := m.sessions[id]; ok {
		live.lastSeen = now
		return live.session, nil
	}
	s := newSession(id, &m.deps)
	if err := s.load(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading session state")
	}
	if len(m.sessions) >= m.deps.MaxSessions {
		m.evictOldestLocked()
	}
	m.sessions[id] = &liveSession{session: s, lastSeen: now}
	return s, nil
}

// sweepLocked drops idle sessions, at most once per sweep interval.
func (m *Manager) sweepLocked(now time.Time) {
	interval := m.deps.IdleTTL / 4
	if interval > time.Minute {
		interval = time.Minute
	}
	if now.Sub(m.lastSweep) < interval {
		return
	}
	m.lastSweep = now
	evicted := 0
	for id, live := range m.sessions {
		if now.Sub(live.lastSeen) >= m.deps.IdleTTL {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.deps.Logger.Info(m.deps.Logger.WithField(context.Background(), "evicted", evicted), "session.idle_evicted")
	}
}

func (m *Manager) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, live := range m.sessions {
		if oldestID == "" || live.lastSeen.Before(oldest) {
			oldestID, oldest = id, live.lastSeen
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
	}
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Ping checks the persistence backend.
func (m *Manager) Ping(ctx context.Context) error {
	return m.deps.Store.Ping(ctx)
}
