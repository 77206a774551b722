package recorder

import "GoldBoard/internal/news"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ *SnapshotRecord) error    { return nil }
func (n *NoopRecorder) RecordNews(_ []news.Item) error            { return nil }
func (n *NoopRecorder) RecordFetchError(_ *FetchErrorEvent) error { return nil }
func (n *NoopRecorder) Close() error                              { return nil }
