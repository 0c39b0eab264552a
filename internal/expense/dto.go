package expense

import (
	"math"
	"strings"
	"time"

	"github.com/frahmantamala/spendwise-server/internal"
	"github.com/frahmantamala/spendwise-server/internal/category"
)

// CreateExpenseDTO is the request payload for logging an expense. Date is
// optional and defaults to today; everything else is required.
type CreateExpenseDTO struct {
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Note     string  `json:"note,omitempty"`
	Date     string  `json:"date,omitempty"`
}

// Validate enforces the store invariants at the boundary: the form on the
// client validates too, but a record with amount <= 0 or an unknown category
// must never reach the collection.
func (dto CreateExpenseDTO) Validate() error {
	if dto.Amount <= 0 {
		return internal.NewValidationError("amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if math.IsNaN(dto.Amount) || math.IsInf(dto.Amount, 0) {
		return internal.NewValidationError("amount must be a finite number", internal.ErrCodeInvalidAmount)
	}
	if dto.Category == "" {
		return internal.NewValidationError("category is required", internal.ErrCodeInvalidCategory)
	}
	if !category.IsValid(category.Category(dto.Category)) {
		return internal.NewValidationError("unknown category "+dto.Category, internal.ErrCodeInvalidCategory)
	}
	if dto.Date != "" {
		if _, err := time.Parse(DateLayout, dto.Date); err != nil {
			return internal.NewValidationError("date must be formatted as YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

// trimmedNote returns the note with surrounding whitespace stripped;
// whitespace-only notes collapse to absent.
func (dto CreateExpenseDTO) trimmedNote() string {
	return strings.TrimSpace(dto.Note)
}
