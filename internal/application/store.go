package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"bluetec-catalog/internal/domain"

	"go.uber.org/zap"
)

const DefaultStaleAfter = 30 * time.Minute

// CacheStore memoizes product query results for the session and mirrors
// them to a SessionStore. Entries never expire individually; the whole
// mirror is discarded at restore time once it is older than staleAfter.
type CacheStore struct {
	mu      sync.RWMutex
	entries map[domain.Fingerprint]domain.CacheEntry

	// persistMu serializes mirror writes so an older snapshot never lands
	// after a newer one.
	persistMu sync.Mutex
	session   SessionStore
	durable   bool

	clock      Clock
	staleAfter time.Duration
	log        *zap.Logger
}

type StoreOption func(*CacheStore)

func WithStoreClock(c Clock) StoreOption { return func(s *CacheStore) { s.clock = c } }
func WithStaleAfter(d time.Duration) StoreOption {
	return func(s *CacheStore) { s.staleAfter = d }
}
func WithStoreLogger(l *zap.Logger) StoreOption { return func(s *CacheStore) { s.log = l } }

// NewCacheStore builds the store and restores the session mirror, if any.
// A nil session keeps the store memory-only.
func NewCacheStore(ctx context.Context, session SessionStore, opts ...StoreOption) *CacheStore {
	s := &CacheStore{
		entries: map[domain.Fingerprint]domain.CacheEntry{},
		session: session,
		durable: session != nil,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.staleAfter <= 0 {
		s.staleAfter = DefaultStaleAfter
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.restore(ctx)
	return s
}

func (s *CacheStore) Get(fp domain.Fingerprint) (domain.CacheEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[fp]
	return e, ok
}

// Set overwrites fp and mirrors the whole store. Mirror failures are logged
// and switch the store to memory-only for the rest of the session.
func (s *CacheStore) Set(ctx context.Context, fp domain.Fingerprint, e domain.CacheEntry) {
	s.mu.Lock()
	s.entries[fp] = e
	s.mu.Unlock()
	s.persist(ctx)
}

func (s *CacheStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.entries = map[domain.Fingerprint]domain.CacheEntry{}
	s.mu.Unlock()

	if s.session == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if err := s.session.Delete(ctx); err != nil {
		s.log.Warn("session.delete_failed", zap.Error(err))
	}
}

func (s *CacheStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// HasDurableCopy reports whether a mirror currently exists.
func (s *CacheStore) HasDurableCopy(ctx context.Context) bool {
	if s.session == nil {
		return false
	}
	ok, err := s.session.Exists(ctx)
	if err != nil {
		s.log.Debug("session.exists_failed", zap.Error(err))
		return false
	}
	return ok
}

func (s *CacheStore) persist(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if !s.durable {
		return
	}

	s.mu.RLock()
	b, err := encodeSnapshot(s.clock.Now(), s.entries)
	n := len(s.entries)
	s.mu.RUnlock()
	if err != nil {
		s.disableDurable("session.encode_failed", err)
		return
	}
	if err := s.session.Save(ctx, b); err != nil {
		s.disableDurable("session.persist_failed", err)
		return
	}
	s.log.Debug("session.persisted", zap.Int("entries", n), zap.Int("bytes", len(b)))
}

func (s *CacheStore) disableDurable(event string, err error) {
	s.durable = false
	s.log.Warn(event, zap.Error(err))
}

func (s *CacheStore) restore(ctx context.Context) {
	if s.session == nil {
		return
	}
	b, err := s.session.Load(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		return
	}
	if err != nil {
		s.log.Warn("session.load_failed", zap.Error(err))
		return
	}
	savedAt, entries, err := decodeSnapshot(b)
	if err != nil {
		s.log.Warn("session.restore_corrupt", zap.Error(err))
		return
	}
	if age := s.clock.Now().Sub(savedAt); age > s.staleAfter {
		s.log.Info("session.restore_stale", zap.Duration("age", age))
		return
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	s.log.Info("session.restored", zap.Int("entries", len(entries)))
}
