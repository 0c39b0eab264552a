package expense

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/spendwise-server/internal"
	"github.com/frahmantamala/spendwise-server/internal/category"
	expenseDatamodel "github.com/frahmantamala/spendwise-server/internal/core/datamodel/expense"
	"github.com/frahmantamala/spendwise-server/internal/core/events"
	"github.com/google/uuid"
)

// SnapshotReader loads persisted snapshots during hydration. A missing key
// returns (nil, nil), which is the first-run case, not an error.
type SnapshotReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// EventPublisher is the write side of persistence: mutations publish full
// state snapshots and the storage layer subscribes.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	PublishSync(ctx context.Context, event events.Event) error
}

// Service is the expense store: the authoritative in-memory collection of
// expenses plus the budget scalar. All mutation funnels through it. Every
// mutation after hydration publishes a serialized snapshot of the changed
// key; the write happens in the background and its failure never rolls back
// the in-memory change.
type Service struct {
	reader SnapshotReader
	bus    EventPublisher
	logger *slog.Logger

	now   func() time.Time
	newID func() string

	mu            sync.RWMutex
	expenses      []Expense
	budget        float64
	defaultBudget float64
	hydrated      bool
	versions      map[string]uint64
}

type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides expense id generation, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(reader SnapshotReader, bus EventPublisher, logger *slog.Logger, defaultBudget float64, opts ...Option) *Service {
	if defaultBudget <= 0 {
		defaultBudget = internal.DefaultBudget
	}
	s := &Service{
		reader:        reader,
		bus:           bus,
		logger:        logger,
		now:           time.Now,
		newID:         uuid.NewString,
		budget:        defaultBudget,
		defaultBudget: defaultBudget,
		versions:      make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads the persisted expense collection and budget, once, at
// startup. Read or parse failures are logged and tolerated: the store keeps
// its defaults and the app works from memory. Either way the store ends up
// hydrated and persistence writes are enabled from then on.
func (s *Service) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}

	raw, err := s.reader.Get(ctx, events.SnapshotKeyExpenses)
	switch {
	case err != nil:
		s.logger.Warn("failed to load expenses snapshot, starting empty", "error", err)
	case raw != nil:
		var records []expenseDatamodel.Record
		if err := json.Unmarshal(raw, &records); err != nil {
			s.logger.Warn("failed to parse expenses snapshot, starting empty", "error", err)
			break
		}
		parsed, err := FromDataModelSlice(records)
		if err != nil {
			s.logger.Warn("failed to parse expenses snapshot, starting empty", "error", err)
			break
		}
		s.expenses = parsed
	}

	raw, err = s.reader.Get(ctx, events.SnapshotKeyBudget)
	switch {
	case err != nil:
		s.logger.Warn("failed to load budget snapshot, keeping default", "error", err)
	case raw != nil:
		var budget float64
		if err := json.Unmarshal(raw, &budget); err != nil {
			s.logger.Warn("failed to parse budget snapshot, keeping default", "error", err)
			break
		}
		// A non-positive persisted budget is treated as corrupt and ignored.
		if budget > 0 {
			s.budget = budget
		}
	}

	s.hydrated = true
	s.logger.Info("store hydrated", "expenses", len(s.expenses), "budget", s.budget)
}

// Hydrated reports whether the startup load has completed.
func (s *Service) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// AddExpense validates the input, creates the record and prepends it to the
// collection. The new expense is visible to readers immediately; the storage
// write happens in the background.
func (s *Service) AddExpense(ctx context.Context, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err)
		return nil, err
	}

	s.mu.Lock()
	now := s.now()
	date := now
	if dto.Date != "" {
		date, _ = time.Parse(DateLayout, dto.Date) // validated above
	}

	e := Expense{
		ID:        s.newID(),
		Amount:    dto.Amount,
		Category:  category.Category(dto.Category),
		Note:      dto.trimmedNote(),
		Date:      date,
		CreatedAt: now,
	}
	s.expenses = append([]Expense{e}, s.expenses...)
	event, ok := s.expensesSnapshotLocked()
	s.mu.Unlock()

	if ok {
		_ = s.bus.Publish(ctx, event)
	}

	s.logger.Info("expense added",
		"expense_id", e.ID,
		"amount", e.Amount,
		"category", e.Category,
		"date", e.Date.Format(DateLayout))

	return &e, nil
}

// DeleteExpense removes the record with the given id. Deleting an id that is
// not present is a no-op, reported through the return value so the handler
// can answer 404, never an internal error.
func (s *Service) DeleteExpense(ctx context.Context, id string) bool {
	s.mu.Lock()
	idx := -1
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Debug("delete of absent expense ignored", "expense_id", id)
		return false
	}

	s.expenses = append(s.expenses[:idx], s.expenses[idx+1:]...)
	event, ok := s.expensesSnapshotLocked()
	s.mu.Unlock()

	if ok {
		_ = s.bus.Publish(ctx, event)
	}

	s.logger.Info("expense deleted", "expense_id", id)
	return true
}

// GetExpense returns the record with the given id.
func (s *Service) GetExpense(id string) (*Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			e := s.expenses[i]
			return &e, nil
		}
	}
	return nil, internal.ErrExpenseNotFound
}

// Expenses returns a copy of the current collection. Insertion order is not
// meaningful; consumers sort for display.
func (s *Service) Expenses() []Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Budget returns the current spending ceiling.
func (s *Service) Budget() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budget
}

// UpdateBudget replaces the budget scalar. Each update fully replaces the
// previous value; there is no history. Validation happens at the DTO
// boundary.
func (s *Service) UpdateBudget(ctx context.Context, value float64) {
	s.mu.Lock()
	s.budget = value
	event, ok := s.budgetSnapshotLocked()
	s.mu.Unlock()

	if ok {
		_ = s.bus.Publish(ctx, event)
	}

	s.logger.Info("budget updated", "budget", value)
}

// Flush writes both snapshots synchronously. The server does not need this
// on the request path; the seeder and shutdown use it to avoid losing
// in-flight background writes.
func (s *Service) Flush(ctx context.Context) error {
	s.mu.Lock()
	expensesEvent, expensesOK := s.expensesSnapshotLocked()
	budgetEvent, budgetOK := s.budgetSnapshotLocked()
	s.mu.Unlock()

	if expensesOK {
		if err := s.bus.PublishSync(ctx, expensesEvent); err != nil {
			return err
		}
	}
	if budgetOK {
		if err := s.bus.PublishSync(ctx, budgetEvent); err != nil {
			return err
		}
	}
	return nil
}

// expensesSnapshotLocked serializes the current collection and stamps it with
// the next version for its key. Caller must hold mu. Snapshots are not taken
// before hydration so a slow startup load can never be clobbered by an empty
// default state.
func (s *Service) expensesSnapshotLocked() (events.SnapshotWriteRequested, bool) {
	if !s.hydrated {
		return events.SnapshotWriteRequested{}, false
	}
	payload, err := json.Marshal(ToDataModelSlice(s.expenses))
	if err != nil {
		s.logger.Error("failed to serialize expenses snapshot", "error", err)
		return events.SnapshotWriteRequested{}, false
	}
	s.versions[events.SnapshotKeyExpenses]++
	return events.NewSnapshotWriteRequested(events.SnapshotKeyExpenses, payload, s.versions[events.SnapshotKeyExpenses]), true
}

func (s *Service) budgetSnapshotLocked() (events.SnapshotWriteRequested, bool) {
	if !s.hydrated {
		return events.SnapshotWriteRequested{}, false
	}
	payload, err := json.Marshal(s.budget)
	if err != nil {
		s.logger.Error("failed to serialize budget snapshot", "error", err)
		return events.SnapshotWriteRequested{}, false
	}
	s.versions[events.SnapshotKeyBudget]++
	return events.NewSnapshotWriteRequested(events.SnapshotKeyBudget, payload, s.versions[events.SnapshotKeyBudget]), true
}
