// Package memory implementa core.KeyRepository en proceso.
// Pensado para dev/tests; no sobrevive reinicios.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

type Store struct {
	mu   sync.RWMutex
	list []core.KeyRecord
	byID map[string]struct{}
}

func New() *Store {
	return &Store{byID: make(map[string]struct{})}
}

func (s *Store) Insert(ctx context.Context, k *core.KeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[k.KID]; ok {
		return core.ErrDuplicateKey
	}
	s.byID[k.KID] = struct{}{}
	s.list = append(s.list, *k)
	return nil
}

func (s *Store) ListValid(ctx context.Context, now time.Time) ([]core.KeyRecord, error) {
	return s.filter(now, false), nil
}

func (s *Store) ListExpired(ctx context.Context, now time.Time) ([]core.KeyRecord, error) {
	return s.filter(now, true), nil
}

func (s *Store) PickValid(ctx context.Context, now time.Time) (*core.KeyRecord, error) {
	return s.pick(now, false)
}

func (s *Store) PickExpired(ctx context.Context, now time.Time) (*core.KeyRecord, error) {
	return s.pick(now, true)
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) filter(now time.Time, expired bool) []core.KeyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.KeyRecord, 0, len(s.list))
	for _, k := range s.list {
		if k.Expired(now) == expired {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Store) pick(now time.Time, expired bool) (*core.KeyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *core.KeyRecord
	for i := range s.list {
		k := &s.list[i]
		if k.Expired(now) != expired {
			continue
		}
		// la más fresca gana
		if best == nil || k.CreatedAt.After(best.CreatedAt) {
			best = k
		}
	}
	if best == nil {
		return nil, core.ErrNotFound
	}
	cp := *best
	return &cp, nil
}
