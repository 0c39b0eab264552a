package storage_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/spendwise-server/internal/core/events"
	"github.com/frahmantamala/spendwise-server/internal/storage"
)

func TestStorage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Storage Suite")
}

// Mock snapshot writer for testing
type mockSnapshotWriter struct {
	written  map[string][]byte
	puts     int
	putError error
}

func newMockSnapshotWriter() *mockSnapshotWriter {
	return &mockSnapshotWriter{written: make(map[string][]byte)}
}

func (m *mockSnapshotWriter) Put(ctx context.Context, key string, value []byte) error {
	m.puts++
	if m.putError != nil {
		return m.putError
	}
	m.written[key] = value
	return nil
}

var _ = Describe("Persister", func() {
	var (
		writer *mockSnapshotWriter
		bus    *events.EventBus
		ctx    context.Context
	)

	// PublishSync runs the persister inline, which keeps assertions free of
	// goroutine races. The production path uses the async Publish.
	BeforeEach(func() {
		writer = newMockSnapshotWriter()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		storage.NewPersister(writer, logger).Register(bus)
		ctx = context.Background()
	})

	It("should write the snapshot payload under its key", func() {
		event := events.NewSnapshotWriteRequested("expenses", []byte(`[]`), 1)

		Expect(bus.PublishSync(ctx, event)).To(Succeed())
		Expect(writer.written).To(HaveKey("expenses"))
		Expect(string(writer.written["expenses"])).To(Equal(`[]`))
	})

	It("should drop a stale version after a newer one landed", func() {
		newer := events.NewSnapshotWriteRequested("expenses", []byte(`["new"]`), 2)
		stale := events.NewSnapshotWriteRequested("expenses", []byte(`["old"]`), 1)

		Expect(bus.PublishSync(ctx, newer)).To(Succeed())
		Expect(bus.PublishSync(ctx, stale)).To(Succeed())

		Expect(string(writer.written["expenses"])).To(Equal(`["new"]`))
		Expect(writer.puts).To(Equal(1))
	})

	It("should track versions per key independently", func() {
		Expect(bus.PublishSync(ctx, events.NewSnapshotWriteRequested("expenses", []byte(`[]`), 5))).To(Succeed())
		Expect(bus.PublishSync(ctx, events.NewSnapshotWriteRequested("budget", []byte(`60000`), 1))).To(Succeed())

		Expect(writer.written).To(HaveKey("expenses"))
		Expect(writer.written).To(HaveKey("budget"))
	})

	It("should surface a write failure without recording the version", func() {
		writer.putError = errors.New("disk full")
		Expect(bus.PublishSync(ctx, events.NewSnapshotWriteRequested("budget", []byte(`1`), 1))).ToNot(Succeed())

		// The same version can land again once the writer recovers.
		writer.putError = nil
		Expect(bus.PublishSync(ctx, events.NewSnapshotWriteRequested("budget", []byte(`1`), 1))).To(Succeed())
		Expect(writer.written).To(HaveKey("budget"))
	})
})
