package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"GoldBoard/internal/model"
	"GoldBoard/internal/news"
)

const (
	keySnapshot     = "snapshot"
	keySnapshotLast = "snapshot_last"
	keyNews         = "news"
)

// Store memoizes the latest dashboard snapshot and headline list with
// independent TTLs. Alongside the expiring snapshot it keeps a
// non-expiring "last good" copy, so a failed refresh leaves the prior
// result on display. Safe for concurrent use.
type Store struct {
	data    *gocache.Cache
	dataTTL time.Duration
	newsTTL time.Duration
}

// NewStore creates a store with the given TTLs.
func NewStore(dataTTL, newsTTL time.Duration) *Store {
	cleanup := dataTTL
	if newsTTL > cleanup {
		cleanup = newsTTL
	}
	return &Store{
		data:    gocache.New(dataTTL, cleanup),
		dataTTL: dataTTL,
		newsTTL: newsTTL,
	}
}

// SetSnapshot stores a fresh snapshot and updates the last-good copy.
func (s *Store) SetSnapshot(snap *model.Snapshot) {
	s.data.Set(keySnapshot, snap, s.dataTTL)
	s.data.Set(keySnapshotLast, snap, gocache.NoExpiration)
}

// Snapshot returns the current snapshot and whether it is still fresh.
func (s *Store) Snapshot() (*model.Snapshot, bool) {
	if v, ok := s.data.Get(keySnapshot); ok {
		return v.(*model.Snapshot), true
	}
	return nil, false
}

// LastGood returns the most recent successfully stored snapshot,
// regardless of TTL expiry.
func (s *Store) LastGood() (*model.Snapshot, bool) {
	if v, ok := s.data.Get(keySnapshotLast); ok {
		return v.(*model.Snapshot), true
	}
	return nil, false
}

// SetNews stores the headline list.
func (s *Store) SetNews(items []news.Item) {
	s.data.Set(keyNews, items, s.newsTTL)
}

// News returns the cached headlines, or nil when absent or expired.
func (s *Store) News() []news.Item {
	if v, ok := s.data.Get(keyNews); ok {
		return v.([]news.Item)
	}
	return nil
}

// Invalidate drops the expiring slots. The last-good snapshot survives
// until the next successful refresh replaces it.
func (s *Store) Invalidate() {
	s.data.Delete(keySnapshot)
	s.data.Delete(keyNews)
}
