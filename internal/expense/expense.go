package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/spendwise-server/internal/category"
	expenseDatamodel "github.com/frahmantamala/spendwise-server/internal/core/datamodel/expense"
)

// DateLayout is the calendar-day format used on the wire and in snapshots.
const DateLayout = "2006-01-02"

// Expense is a single recorded spending transaction. Records are immutable
// once created; the only lifecycle operation besides creation is deletion.
type Expense struct {
	ID        string
	Amount    float64
	Category  category.Category
	Note      string
	Date      time.Time
	CreatedAt time.Time
}

// Type returns the essential / non-essential classification of this expense,
// derived from its category.
func (e *Expense) Type() category.Type {
	return category.TypeOf(e.Category)
}

func ToDataModel(e *Expense) expenseDatamodel.Record {
	return expenseDatamodel.Record{
		ID:        e.ID,
		Amount:    e.Amount,
		Category:  string(e.Category),
		Note:      e.Note,
		Date:      e.Date.Format(DateLayout),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func FromDataModel(r expenseDatamodel.Record) (Expense, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return Expense{}, fmt.Errorf("expense %s: bad date %q: %w", r.ID, r.Date, err)
	}
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return Expense{}, fmt.Errorf("expense %s: bad createdAt %q: %w", r.ID, r.CreatedAt, err)
	}
	return Expense{
		ID:        r.ID,
		Amount:    r.Amount,
		Category:  category.Category(r.Category),
		Note:      strings.TrimSpace(r.Note),
		Date:      date,
		CreatedAt: createdAt,
	}, nil
}

func ToDataModelSlice(expenses []Expense) []expenseDatamodel.Record {
	records := make([]expenseDatamodel.Record, len(expenses))
	for i := range expenses {
		records[i] = ToDataModel(&expenses[i])
	}
	return records
}

func FromDataModelSlice(records []expenseDatamodel.Record) ([]Expense, error) {
	expenses := make([]Expense, 0, len(records))
	for _, r := range records {
		e, err := FromDataModel(r)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}
