// Package store provides the merchant memory store.
package store

import (
	"github.com/rcliao/merchant-memory/internal/model"
)

// Store maps merchant identity to the merchant's most recent snapshot.
type Store interface {
	// Upsert replaces the snapshot held for identity. Prior items are not merged.
	Upsert(identity string, snap model.MerchantSnapshot)

	// Get returns the snapshot for identity, if any.
	Get(identity string) (model.MerchantSnapshot, bool)

	// All returns every snapshot. Order is unspecified.
	All() []model.MerchantSnapshot

	// IsEmpty reports whether nothing has been observed yet.
	IsEmpty() bool
}

// MemStore is the in-memory Store owned by one game session.
// It is not safe for concurrent use.
type MemStore struct {
	merchants map[string]model.MerchantSnapshot
	seenAny   bool
}

// New returns an empty MemStore.
func New() *MemStore {
	return &MemStore{merchants: make(map[string]model.MerchantSnapshot)}
}

func (s *MemStore) Upsert(identity string, snap model.MerchantSnapshot) {
	snap.Identity = identity
	s.merchants[identity] = snap.Clone()
	s.seenAny = true
}

func (s *MemStore) Get(identity string) (model.MerchantSnapshot, bool) {
	m, ok := s.merchants[identity]
	if !ok {
		return model.MerchantSnapshot{}, false
	}
	return m.Clone(), true
}

func (s *MemStore) All() []model.MerchantSnapshot {
	out := make([]model.MerchantSnapshot, 0, len(s.merchants))
	for _, m := range s.merchants {
		out = append(out, m.Clone())
	}
	return out
}

func (s *MemStore) IsEmpty() bool {
	return !s.seenAny
}

// Len returns the number of remembered merchants.
func (s *MemStore) Len() int {
	return len(s.merchants)
}

// Export returns a copy of the whole mapping for serialization.
func (s *MemStore) Export() map[string]model.MerchantSnapshot {
	out := make(map[string]model.MerchantSnapshot, len(s.merchants))
	for id, m := range s.merchants {
		out[id] = m.Clone()
	}
	return out
}

// Replace swaps in a freshly loaded mapping. The store is empty afterwards
// only if merchants is empty.
func (s *MemStore) Replace(merchants map[string]model.MerchantSnapshot) {
	s.merchants = make(map[string]model.MerchantSnapshot, len(merchants))
	for id, m := range merchants {
		m.Identity = id
		s.merchants[id] = m.Clone()
	}
	s.seenAny = len(s.merchants) > 0
}
