package budget

import (
	"math"

	"github.com/frahmantamala/spendwise-server/internal"
)

// UpdateBudgetDTO is the request payload for replacing the monthly budget.
type UpdateBudgetDTO struct {
	Budget float64 `json:"budget"`
}

func (dto UpdateBudgetDTO) Validate() error {
	if dto.Budget <= 0 {
		return internal.NewValidationError("budget must be greater than 0", internal.ErrCodeInvalidBudget)
	}
	if math.IsNaN(dto.Budget) || math.IsInf(dto.Budget, 0) {
		return internal.NewValidationError("budget must be a finite number", internal.ErrCodeInvalidBudget)
	}
	return nil
}

type BudgetResponse struct {
	Budget float64 `json:"budget"`
}
