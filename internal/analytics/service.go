package analytics

import (
	"log/slog"
	"math"
	"time"

	expenseDatamodel "github.com/frahmantamala/spendwise-server/internal/core/datamodel/expense"
	"github.com/frahmantamala/spendwise-server/internal/expense"
)

// StateProvider is the read-only slice of the expense store the analytics
// endpoints consume. Aggregation never mutates, so this is all it gets.
type StateProvider interface {
	Expenses() []expense.Expense
	Budget() float64
}

// DashboardResponse backs the app's main screen: this month's summary, how
// the spend compares to the budget, and the latest transactions.
type DashboardResponse struct {
	Summary          MonthlySummary            `json:"summary"`
	MonthLabel       string                    `json:"month_label"`
	Budget           float64                   `json:"budget"`
	Remaining        float64                   `json:"remaining"`
	RemainingPercent int                       `json:"remaining_percent"`
	Recent           []expenseDatamodel.Record `json:"recent"`
}

type Service struct {
	state  StateProvider
	logger *slog.Logger
	now    func() time.Time
}

func NewService(state StateProvider, logger *slog.Logger) *Service {
	return &Service{
		state:  state,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) MonthSummary(month time.Month, year int) MonthlySummary {
	return Summarize(s.state.Expenses(), month, year)
}

func (s *Service) TrailingMonthTotals(n int) []MonthTotal {
	return TrailingMonths(s.state.Expenses(), n, s.now())
}

// Dashboard aggregates the current month against the budget. Remaining
// percent is rounded to a whole number and clamped at zero once the budget
// is blown, matching how the client renders the progress bar.
func (s *Service) Dashboard(recentLimit int) DashboardResponse {
	expenses := s.state.Expenses()
	budget := s.state.Budget()
	now := s.now()

	summary := Summarize(expenses, now.Month(), now.Year())
	remaining := budget - summary.Total

	percent := 0
	if budget > 0 {
		percent = int(math.Round(remaining / budget * 100))
	}
	if percent < 0 {
		percent = 0
	}

	return DashboardResponse{
		Summary:          summary,
		MonthLabel:       now.Format("January"),
		Budget:           budget,
		Remaining:        remaining,
		RemainingPercent: percent,
		Recent:           expense.ToDataModelSlice(Recent(expenses, recentLimit)),
	}
}
