package sessions

import (
	"container/list"
	"context"
	"slices"
	"stroke-risk-service/internal/domain"
	"sync"
	"time"
)

const (
	DefaultTTL        = time.Hour
	DefaultMaxEntries = 10000
)

// MemoryStore keeps results in process memory. Nothing survives a restart.
//
// Entries expire TTL after their last write and the store holds at most
// MaxEntries sessions, evicting the least recently used one when full.
type MemoryStore struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	ll         *list.List
	items      map[string]*list.Element
	now        func() time.Time
}

type entry struct {
	id        string
	res       domain.PredictionResult
	expiresAt time.Time
}

// NewMemoryStore returns a store; a non-positive ttl or maxEntries selects the default.
func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{
		ttl:        ttl,
		maxEntries: maxEntries,
		ll:         list.New(),
		items:      make(map[string]*list.Element),
		now:        time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (domain.PredictionResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[sessionID]
	if !ok {
		return domain.PredictionResult{}, false, nil
	}
	e := el.Value.(*entry)
	if !s.now().Before(e.expiresAt) {
		s.remove(el)
		return domain.PredictionResult{}, false, nil
	}

	s.ll.MoveToFront(el)
	return clone(e.res), true, nil
}

func (s *MemoryStore) Put(ctx context.Context, sessionID string, res domain.PredictionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if el, ok := s.items[sessionID]; ok {
		e := el.Value.(*entry)
		e.res = clone(res)
		e.expiresAt = now.Add(s.ttl)
		s.ll.MoveToFront(el)
		return nil
	}

	s.items[sessionID] = s.ll.PushFront(&entry{id: sessionID, res: clone(res), expiresAt: now.Add(s.ttl)})
	s.evict(now)
	return nil
}

// Len reports the number of stored sessions, expired ones included until evicted.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}

// evict drops expired entries from the cold end, then trims to maxEntries.
func (s *MemoryStore) evict(now time.Time) {
	for el := s.ll.Back(); el != nil; {
		prev := el.Prev()
		if !now.Before(el.Value.(*entry).expiresAt) {
			s.remove(el)
		}
		el = prev
	}
	for s.ll.Len() > s.maxEntries {
		s.remove(s.ll.Back())
	}
}

func (s *MemoryStore) remove(el *list.Element) {
	s.ll.Remove(el)
	delete(s.items, el.Value.(*entry).id)
}

// Copies slices and pointers so callers never share state with the store.
func clone(res domain.PredictionResult) domain.PredictionResult {
	res.Hospitals = slices.Clone(res.Hospitals)
	if res.Location != nil {
		loc := *res.Location
		res.Location = &loc
	}
	return res
}
