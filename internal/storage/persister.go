package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/spendwise-server/internal"
	"github.com/frahmantamala/spendwise-server/internal/core/events"
)

// SnapshotWriter is what the persister needs from the repository.
type SnapshotWriter interface {
	Put(ctx context.Context, key string, value []byte) error
}

// Persister subscribes to snapshot-write events and applies them to durable
// storage. Writes are fire-and-forget from the store's point of view: a
// failure is logged and dropped, never retried, and never affects in-memory
// state. Overlapping writes of the same key are resolved by version so the
// durable copy always ends up at the latest snapshot.
type Persister struct {
	writer       SnapshotWriter
	logger       *slog.Logger
	writeTimeout time.Duration

	mu          sync.Mutex
	lastWritten map[string]uint64
}

func NewPersister(writer SnapshotWriter, logger *slog.Logger) *Persister {
	return &Persister{
		writer:       writer,
		logger:       logger,
		writeTimeout: 5 * time.Second,
		lastWritten:  make(map[string]uint64),
	}
}

// Register subscribes the persister to the event bus.
func (p *Persister) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeSnapshotWrite, p.handle)
}

func (p *Persister) handle(ctx context.Context, event events.Event) error {
	snap, ok := event.(events.SnapshotWriteRequested)
	if !ok {
		p.logger.Error("unexpected event payload on snapshot topic", "event_id", event.EventID())
		return nil
	}

	// The write must survive the HTTP request that triggered it, so it gets
	// its own deadline rather than the request context.
	writeCtx, cancel := internal.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if snap.Version <= p.lastWritten[snap.Key] {
		p.logger.Debug("dropping stale snapshot write",
			"key", snap.Key,
			"version", snap.Version,
			"last_written", p.lastWritten[snap.Key])
		return nil
	}

	if err := p.writer.Put(writeCtx, snap.Key, snap.Value); err != nil {
		// The bus logs this. In-memory state stays authoritative and the
		// next mutation writes a fresh snapshot; there is no retry.
		return err
	}

	p.lastWritten[snap.Key] = snap.Version
	p.logger.Debug("snapshot written", "key", snap.Key, "version", snap.Version, "bytes", len(snap.Value))
	return nil
}
