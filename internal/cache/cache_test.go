package cache

import (
	"testing"
	"time"

	"GoldBoard/internal/model"
	"GoldBoard/internal/news"
)

func TestStore_SnapshotLifecycle(t *testing.T) {
	s := NewStore(50*time.Millisecond, time.Minute)

	if _, ok := s.Snapshot(); ok {
		t.Fatal("expected empty store")
	}

	snap := &model.Snapshot{Price: 2400}
	s.SetSnapshot(snap)

	got, ok := s.Snapshot()
	if !ok || got.Price != 2400 {
		t.Fatalf("expected cached snapshot, got %v (ok=%v)", got, ok)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := s.Snapshot(); ok {
		t.Error("expected snapshot to expire after TTL")
	}
	if last, ok := s.LastGood(); !ok || last.Price != 2400 {
		t.Error("expected last-good snapshot to survive TTL expiry")
	}
}

func TestStore_Invalidate(t *testing.T) {
	s := NewStore(time.Minute, time.Minute)
	s.SetSnapshot(&model.Snapshot{Price: 2400})
	s.SetNews([]news.Item{{Title: "t", URL: "u"}})

	s.Invalidate()

	if _, ok := s.Snapshot(); ok {
		t.Error("expected snapshot dropped by Invalidate")
	}
	if s.News() != nil {
		t.Error("expected news dropped by Invalidate")
	}
	if _, ok := s.LastGood(); !ok {
		t.Error("expected last-good snapshot to survive Invalidate")
	}
}

func TestStore_News(t *testing.T) {
	s := NewStore(time.Minute, time.Minute)
	if s.News() != nil {
		t.Error("expected nil news on empty store")
	}
	items := []news.Item{{Title: "Gold up", URL: "https://example.com/a"}}
	s.SetNews(items)
	got := s.News()
	if len(got) != 1 || got[0].Title != "Gold up" {
		t.Errorf("unexpected news: %v", got)
	}
}
