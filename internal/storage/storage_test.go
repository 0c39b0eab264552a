package storage_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/spendwise-server/internal/storage"
)

var _ = Describe("SnapshotRepository", func() {
	var (
		repo *storage.SnapshotRepository
		ctx  context.Context
	)

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&storage.Snapshot{})).To(Succeed())

		repo = storage.NewSnapshotRepository(db)
		ctx = context.Background()
	})

	It("should return nil for a key that was never written", func() {
		value, err := repo.Get(ctx, "expenses")

		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(BeNil())
	})

	It("should round-trip a value", func() {
		Expect(repo.Put(ctx, "budget", []byte(`60000`))).To(Succeed())

		value, err := repo.Get(ctx, "budget")

		Expect(err).NotTo(HaveOccurred())
		Expect(string(value)).To(Equal(`60000`))
	})

	It("should replace the value on a second write to the same key", func() {
		Expect(repo.Put(ctx, "expenses", []byte(`["a"]`))).To(Succeed())
		Expect(repo.Put(ctx, "expenses", []byte(`["a","b"]`))).To(Succeed())

		value, err := repo.Get(ctx, "expenses")

		Expect(err).NotTo(HaveOccurred())
		Expect(string(value)).To(Equal(`["a","b"]`))
	})

	It("should keep keys independent", func() {
		Expect(repo.Put(ctx, "expenses", []byte(`[]`))).To(Succeed())
		Expect(repo.Put(ctx, "budget", []byte(`1`))).To(Succeed())

		value, err := repo.Get(ctx, "budget")

		Expect(err).NotTo(HaveOccurred())
		Expect(string(value)).To(Equal(`1`))
	})
})
