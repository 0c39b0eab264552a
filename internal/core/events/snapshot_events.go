package events

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeSnapshotWrite is published by the expense store after every
// mutation. The persistence layer subscribes to it; nothing else does.
const EventTypeSnapshotWrite = "state.snapshot_write"

// Storage keys for the two snapshots the store maintains. The values double
// as the durable storage layout, so they never change.
const (
	SnapshotKeyExpenses = "expenses"
	SnapshotKeyBudget   = "budget"
)

// SnapshotWriteRequested carries a full serialized snapshot of one storage
// key. Version increases monotonically per key so that a slow write can be
// recognized as stale and dropped (last write wins).
type SnapshotWriteRequested struct {
	ID        string
	Timestamp time.Time
	Key       string
	Value     []byte
	Version   uint64
}

func NewSnapshotWriteRequested(key string, value []byte, version uint64) SnapshotWriteRequested {
	return SnapshotWriteRequested{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Key:       key,
		Value:     value,
		Version:   version,
	}
}

func (e SnapshotWriteRequested) EventType() string { return EventTypeSnapshotWrite }

func (e SnapshotWriteRequested) EventID() string { return e.ID }

func (e SnapshotWriteRequested) OccurredAt() time.Time { return e.Timestamp }

func (e SnapshotWriteRequested) Payload() interface{} {
	return map[string]interface{}{
		"key":     e.Key,
		"version": e.Version,
		"bytes":   len(e.Value),
	}
}
