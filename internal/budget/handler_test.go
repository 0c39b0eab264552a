package budget_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/spendwise-server/internal/budget"
	"github.com/frahmantamala/spendwise-server/internal/transport"
)

func TestBudget(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Budget Suite")
}

// Mock store for testing
type mockStore struct {
	budget float64
}

func (m *mockStore) Budget() float64 { return m.budget }

func (m *mockStore) UpdateBudget(ctx context.Context, value float64) { m.budget = value }

var _ = Describe("Budget Handler", func() {
	var (
		store   *mockStore
		handler *budget.Handler
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store = &mockStore{budget: 60000}
		handler = budget.NewHandler(&transport.BaseHandler{Logger: slogger}, store)
	})

	Describe("GET /budget", func() {
		It("should return the current budget", func() {
			req := httptest.NewRequest(http.MethodGet, "/budget", nil)
			w := httptest.NewRecorder()

			handler.GetBudget(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response budget.BudgetResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Budget).To(Equal(60000.0))
		})
	})

	Describe("PUT /budget", func() {
		It("should replace the budget", func() {
			req := httptest.NewRequest(http.MethodPut, "/budget", bytes.NewBufferString(`{"budget":75000}`))
			w := httptest.NewRecorder()

			handler.UpdateBudget(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(store.budget).To(Equal(75000.0))

			var response budget.BudgetResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Budget).To(Equal(75000.0))
		})

		It("should reject a non-positive budget", func() {
			req := httptest.NewRequest(http.MethodPut, "/budget", bytes.NewBufferString(`{"budget":0}`))
			w := httptest.NewRecorder()

			handler.UpdateBudget(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(store.budget).To(Equal(60000.0))
		})

		It("should reject a malformed body", func() {
			req := httptest.NewRequest(http.MethodPut, "/budget", bytes.NewBufferString(`{`))
			w := httptest.NewRecorder()

			handler.UpdateBudget(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
