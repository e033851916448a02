package gridvalidate

import (
	"context"

	"github.com/dmitrymomot/gridvalidate/pkg/broadcast"
)

// CellEdit is published by the host after a cell edit completes.
type CellEdit struct {
	Row      *Row
	Column   *ColumnDef
	NewValue any
	OldValue any
}

// EditFeed carries cell edits from the host to subscribers.
type EditFeed struct {
	b *broadcast.MemoryBroadcaster[CellEdit]
}

// NewEditFeed creates a feed whose subscribers buffer up to bufferSize edits.
// Publishers wait when a subscriber's buffer is full.
func NewEditFeed(bufferSize int) *EditFeed {
	return &EditFeed{b: broadcast.NewMemoryBroadcaster[CellEdit](bufferSize, broadcast.Block)}
}

// Publish delivers edit to every subscriber.
func (f *EditFeed) Publish(ctx context.Context, edit CellEdit) error {
	return f.b.Broadcast(ctx, broadcast.Message[CellEdit]{Data: edit})
}

// Subscribe registers a subscriber removed when ctx is done.
func (f *EditFeed) Subscribe(ctx context.Context) broadcast.Subscriber[CellEdit] {
	return f.b.Subscribe(ctx)
}

// Subscribers reports the number of active subscribers.
func (f *EditFeed) Subscribers() int {
	return f.b.Len()
}

func (f *EditFeed) Close() error {
	return f.b.Close()
}

// EditFeature is the editing capability of a grid.
type EditFeature struct {
	AfterCellEdit *EditFeed
}

// NewEditFeature returns an EditFeature with a fresh AfterCellEdit feed.
func NewEditFeature() *EditFeature {
	return &EditFeature{AfterCellEdit: NewEditFeed(64)}
}

type broadcastMessage = broadcast.Message[CellEdit]
