package budget

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/spendwise-server/internal/transport"
)

// ServiceAPI is the slice of the expense store the budget endpoints need.
type ServiceAPI interface {
	Budget() float64
	UpdateBudget(ctx context.Context, value float64)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, BudgetResponse{Budget: h.Service.Budget()})
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var dto UpdateBudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateBudget: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.Logger.Error("UpdateBudget: validation error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Service.UpdateBudget(r.Context(), dto.Budget)

	h.WriteJSON(w, http.StatusOK, BudgetResponse{Budget: h.Service.Budget()})
}
