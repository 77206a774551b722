package refresh

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"GoldBoard/internal/cache"
	"GoldBoard/internal/collector"
	"GoldBoard/internal/model"
	"GoldBoard/internal/news"
	"GoldBoard/internal/recorder"
)

// Pipeline drives the fetch -> compute -> cache -> record cycle for
// price data and headlines. Refreshes run on cron schedules and on
// manual triggers; both paths share the same code.
type Pipeline struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	News      *news.Fetcher
	Cache     *cache.Store
	Recorder  recorder.Recorder
}

// NewPipeline creates a refresh pipeline.
func NewPipeline(col *collector.Collector, nf *news.Fetcher, store *cache.Store, rec recorder.Recorder) *Pipeline {
	return &Pipeline{
		Cron:      cron.New(),
		Collector: col,
		News:      nf,
		Cache:     store,
		Recorder:  rec,
	}
}

// RegisterAll schedules the periodic data and news refreshes.
func (p *Pipeline) RegisterAll(dataSpec, newsSpec string) error {
	if _, err := p.Cron.AddFunc(dataSpec, func() { p.refreshDataTask() }); err != nil {
		return fmt.Errorf("register data refresh: %w", err)
	}
	if _, err := p.Cron.AddFunc(newsSpec, func() { p.RefreshNews() }); err != nil {
		return fmt.Errorf("register news refresh: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (p *Pipeline) Start() {
	p.Cron.Start()
	log.Println("[INFO] refresh scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (p *Pipeline) Stop() {
	p.Cron.Stop()
	log.Println("[INFO] refresh scheduler stopped")
}

func (p *Pipeline) refreshDataTask() {
	if _, err := p.RefreshData(); err != nil {
		log.Printf("[ERROR] scheduled data refresh: %v", err)
	}
}

// RefreshData fetches fresh market data, caches it, and records the
// snapshot. A failure is recorded and leaves the cache untouched, so
// whatever was displayed before stays on display.
func (p *Pipeline) RefreshData() (*model.Snapshot, error) {
	snap, err := p.Collector.Collect()
	if err != nil {
		if rerr := p.Recorder.RecordFetchError(&recorder.FetchErrorEvent{
			Source: p.Collector.Fetcher.Name(),
			Detail: err.Error(),
		}); rerr != nil {
			log.Printf("[ERROR] record fetch error: %v", rerr)
		}
		return nil, err
	}

	p.Cache.SetSnapshot(snap)
	if err := p.Recorder.RecordSnapshot(recorder.FromSnapshot(snap)); err != nil {
		log.Printf("[ERROR] record snapshot: %v", err)
	}
	log.Printf("[INFO] data refreshed: %s price=%.2f bars=%d", snap.Series.Symbol, snap.Price, len(snap.Series.Bars))
	return snap, nil
}

// RefreshNews scrapes headlines and caches the result. Scrape failures
// yield an empty list by design; only a non-empty fetch replaces the
// cached headlines.
func (p *Pipeline) RefreshNews() []news.Item {
	items := p.News.Fetch()
	if len(items) == 0 {
		log.Println("[WARN] news refresh returned nothing")
		return p.Cache.News()
	}
	p.Cache.SetNews(items)
	if err := p.Recorder.RecordNews(items); err != nil {
		log.Printf("[ERROR] record news: %v", err)
	}
	log.Printf("[INFO] news refreshed: %d headlines", len(items))
	return items
}

// Snapshot returns the cached snapshot, refreshing on a miss. When the
// refresh fails the last good snapshot is served as stale.
func (p *Pipeline) Snapshot() (*model.Snapshot, bool, error) {
	if snap, ok := p.Cache.Snapshot(); ok {
		return snap, false, nil
	}
	snap, err := p.RefreshData()
	if err != nil {
		if last, ok := p.Cache.LastGood(); ok {
			log.Printf("[WARN] refresh failed, serving stale snapshot: %v", err)
			return last, true, nil
		}
		return nil, false, err
	}
	return snap, false, nil
}

// Headlines returns cached headlines, refreshing on a miss.
func (p *Pipeline) Headlines() []news.Item {
	if items := p.Cache.News(); items != nil {
		return items
	}
	return p.RefreshNews()
}

// Invalidate drops cached results so the next request refetches.
// This is the manual refresh trigger.
func (p *Pipeline) Invalidate() {
	p.Cache.Invalidate()
	log.Println("[INFO] cache invalidated by manual refresh")
}
