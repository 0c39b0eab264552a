package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/spendwise-server/internal/core/events"
	"github.com/frahmantamala/spendwise-server/internal/expense"
	"github.com/frahmantamala/spendwise-server/internal/storage"
	"github.com/frahmantamala/spendwise-server/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with sample expenses",
	Long:  `Seed the store with sample expenses for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
		lg := logger.LoggerWrapper()

		db, err := storage.Open(cfg.Database)
		if err != nil {
			log.Fatalf("failed to open snapshot database: %v", err)
		}

		snapshots := storage.NewSnapshotRepository(db)
		bus := events.NewEventBus(lg)
		storage.NewPersister(snapshots, lg).Register(bus)

		svc := expense.NewService(snapshots, bus, lg, cfg.Budget.Default)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc.Hydrate(ctx)

		if clearData {
			for _, e := range svc.Expenses() {
				svc.DeleteExpense(ctx, e.ID)
			}
			fmt.Println("Cleared existing expenses")
		}

		now := time.Now()
		thisMonth := now.Format("2006-01")
		lastMonth := now.AddDate(0, -1, 0).Format("2006-01")
		twoMonthsAgo := now.AddDate(0, -2, 0).Format("2006-01")

		samples := []expense.CreateExpenseDTO{
			{Amount: 15000, Category: "rent", Note: "monthly rent", Date: thisMonth + "-01"},
			{Amount: 2300, Category: "grocery", Note: "weekly groceries", Date: thisMonth + "-03"},
			{Amount: 1800, Category: "bills", Note: "electricity", Date: thisMonth + "-05"},
			{Amount: 950, Category: "food", Note: "dinner out", Date: thisMonth + "-07"},
			{Amount: 600, Category: "transport", Date: thisMonth + "-08"},
			{Amount: 1200, Category: "fun", Note: "concert tickets", Date: thisMonth + "-10"},
			{Amount: 15000, Category: "rent", Note: "monthly rent", Date: lastMonth + "-01"},
			{Amount: 3100, Category: "grocery", Date: lastMonth + "-06"},
			{Amount: 2500, Category: "shopping", Note: "new shoes", Date: lastMonth + "-14"},
			{Amount: 800, Category: "pet_supplies", Note: "cat food", Date: lastMonth + "-20"},
			{Amount: 15000, Category: "rent", Note: "monthly rent", Date: twoMonthsAgo + "-01"},
			{Amount: 1400, Category: "fuel", Date: twoMonthsAgo + "-11"},
			{Amount: 700, Category: "movies", Note: "date night", Date: twoMonthsAgo + "-18"},
		}

		for _, dto := range samples {
			if _, err := svc.AddExpense(ctx, dto); err != nil {
				log.Fatalf("failed to seed expense: %v", err)
			}
		}

		if err := svc.Flush(ctx); err != nil {
			log.Fatalf("failed to persist seeded data: %v", err)
		}

		fmt.Printf("Seeded %d expenses\n", len(samples))
	},
}
