package expense

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/frahmantamala/spendwise-server/internal/transport"
	"github.com/go-chi/chi"
)

// DefaultRecentLimit matches the dashboard's "recent transactions" card.
const DefaultRecentLimit = 3

type ServiceAPI interface {
	AddExpense(ctx context.Context, dto CreateExpenseDTO) (*Expense, error)
	DeleteExpense(ctx context.Context, id string) bool
	GetExpense(id string) (*Expense, error)
	Expenses() []Expense
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

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.AddExpense(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateExpense: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ToDataModel(e))
}

// ListExpenses returns the collection, newest creation first. With month and
// year query parameters it returns only that calendar month, ordered by
// expense date descending instead.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses := h.Service.Expenses()

	monthStr := r.URL.Query().Get("month")
	yearStr := r.URL.Query().Get("year")
	if monthStr != "" || yearStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			h.WriteError(w, http.StatusBadRequest, "month must be between 1 and 12")
			return
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil || year <= 0 {
			h.WriteError(w, http.StatusBadRequest, "year is required with month")
			return
		}

		filtered := expenses[:0:0]
		for _, e := range expenses {
			if e.Date.Month() == time.Month(month) && e.Date.Year() == year {
				filtered = append(filtered, e)
			}
		}
		expenses = filtered
		sort.SliceStable(expenses, func(i, j int) bool {
			return expenses[i].Date.After(expenses[j].Date)
		})
	} else {
		sort.SliceStable(expenses, func(i, j int) bool {
			return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
		})
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit < len(expenses) {
			expenses = expenses[:limit]
		}
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": ToDataModelSlice(expenses),
		"count":    len(expenses),
	})
}

// RecentExpenses returns the most recently created expenses, the dashboard's
// recent-transactions card.
func (h *Handler) RecentExpenses(w http.ResponseWriter, r *http.Request) {
	limit := DefaultRecentLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	expenses := h.Service.Expenses()
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
	if limit < len(expenses) {
		expenses = expenses[:limit]
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": ToDataModelSlice(expenses),
	})
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	e, err := h.Service.GetExpense(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToDataModel(e))
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	if !h.Service.DeleteExpense(r.Context(), id) {
		h.WriteError(w, http.StatusNotFound, "expense not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
