package analytics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/spendwise-server/internal/transport"
)

// DefaultTrailingMonths matches the analytics screen's three-month bar chart.
const DefaultTrailingMonths = 3

type ServiceAPI interface {
	MonthSummary(month time.Month, year int) MonthlySummary
	TrailingMonthTotals(n int) []MonthTotal
	Dashboard(recentLimit int) DashboardResponse
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

// MonthSummary serves GET /analytics/summary?month=&year=. Both parameters
// are required; the client always asks for a concrete month.
func (h *Handler) MonthSummary(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		h.WriteError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		h.WriteError(w, http.StatusBadRequest, "year is required")
		return
	}

	h.WriteJSON(w, http.StatusOK, h.Service.MonthSummary(time.Month(month), year))
}

// TrailingMonths serves GET /analytics/months?n=, the bar chart data.
func (h *Handler) TrailingMonths(w http.ResponseWriter, r *http.Request) {
	n := DefaultTrailingMonths
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed < 1 || parsed > 24 {
			h.WriteError(w, http.StatusBadRequest, "n must be between 1 and 24")
			return
		}
		n = parsed
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"months": h.Service.TrailingMonthTotals(n),
	})
}

// Dashboard serves GET /dashboard, everything the main screen needs in one
// round trip.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	limit := 3
	if limitStr := r.URL.Query().Get("recent"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	h.WriteJSON(w, http.StatusOK, h.Service.Dashboard(limit))
}
