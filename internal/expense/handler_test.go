package expense_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	expenseDatamodel "github.com/frahmantamala/spendwise-server/internal/core/datamodel/expense"
	"github.com/frahmantamala/spendwise-server/internal/expense"
	"github.com/frahmantamala/spendwise-server/internal/transport"
	"github.com/go-chi/chi"
)

var _ = Describe("Expense Handler", func() {
	var (
		svc    *expense.Service
		router *chi.Mux
		ctx    context.Context
	)

	addExpense := func(dto expense.CreateExpenseDTO) *expense.Expense {
		e, err := svc.AddExpense(ctx, dto)
		Expect(err).ToNot(HaveOccurred())
		return e
	}

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		ctx = context.Background()

		svc = expense.NewService(newMockSnapshotReader(), &mockEventBus{}, slogger, 60000)
		svc.Hydrate(ctx)

		handler := expense.NewHandler(&transport.BaseHandler{Logger: slogger}, svc)
		router = chi.NewRouter()
		router.Post("/expenses", handler.CreateExpense)
		router.Get("/expenses", handler.ListExpenses)
		router.Get("/expenses/recent", handler.RecentExpenses)
		router.Get("/expenses/{id}", handler.GetExpense)
		router.Delete("/expenses/{id}", handler.DeleteExpense)
	})

	Describe("POST /expenses", func() {
		It("should create an expense and answer 201 with the record", func() {
			body := bytes.NewBufferString(`{"amount":500,"category":"food","note":"lunch","date":"2025-06-01"}`)
			req := httptest.NewRequest(http.MethodPost, "/expenses", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var record expenseDatamodel.Record
			Expect(json.NewDecoder(w.Body).Decode(&record)).To(Succeed())
			Expect(record.ID).ToNot(BeEmpty())
			Expect(record.Amount).To(Equal(500.0))
			Expect(record.Category).To(Equal("food"))
			Expect(record.Date).To(Equal("2025-06-01"))
		})

		It("should answer 400 for a validation failure", func() {
			body := bytes.NewBufferString(`{"amount":-5,"category":"food"}`)
			req := httptest.NewRequest(http.MethodPost, "/expenses", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewBufferString(`{`))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /expenses", func() {
		BeforeEach(func() {
			addExpense(expense.CreateExpenseDTO{Amount: 500, Category: "food", Date: "2025-06-01"})
			addExpense(expense.CreateExpenseDTO{Amount: 1200, Category: "rent", Date: "2025-06-15"})
			addExpense(expense.CreateExpenseDTO{Amount: 300, Category: "food", Date: "2025-05-20"})
		})

		It("should list everything without filters", func() {
			req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Expenses []expenseDatamodel.Record `json:"expenses"`
				Count    int                       `json:"count"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Count).To(Equal(3))
			Expect(response.Expenses).To(HaveLen(3))
		})

		It("should filter one calendar month, latest date first", func() {
			req := httptest.NewRequest(http.MethodGet, "/expenses?month=6&year=2025", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Expenses []expenseDatamodel.Record `json:"expenses"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Expenses).To(HaveLen(2))
			Expect(response.Expenses[0].Date).To(Equal("2025-06-15"))
			Expect(response.Expenses[1].Date).To(Equal("2025-06-01"))
		})

		It("should reject a month without a year", func() {
			req := httptest.NewRequest(http.MethodGet, "/expenses?month=6", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a month outside 1-12", func() {
			req := httptest.NewRequest(http.MethodGet, "/expenses?month=13&year=2025", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /expenses/recent", func() {
		It("should cap the list at the default limit of three", func() {
			base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
			tick := 0
			svc = expense.NewService(newMockSnapshotReader(), &mockEventBus{},
				slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})), 60000,
				expense.WithClock(func() time.Time {
					tick++
					return base.Add(time.Duration(tick) * time.Minute)
				}))
			svc.Hydrate(ctx)
			handler := expense.NewHandler(&transport.BaseHandler{Logger: slog.Default()}, svc)

			var lastID string
			for i := 0; i < 5; i++ {
				e, err := svc.AddExpense(ctx, expense.CreateExpenseDTO{Amount: 100, Category: "food"})
				Expect(err).ToNot(HaveOccurred())
				lastID = e.ID
			}

			req := httptest.NewRequest(http.MethodGet, "/expenses/recent", nil)
			w := httptest.NewRecorder()
			handler.RecentExpenses(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Expenses []expenseDatamodel.Record `json:"expenses"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Expenses).To(HaveLen(3))
			Expect(response.Expenses[0].ID).To(Equal(lastID))
		})
	})

	Describe("GET /expenses/{id}", func() {
		It("should fetch one expense", func() {
			added := addExpense(expense.CreateExpenseDTO{Amount: 500, Category: "food"})

			req := httptest.NewRequest(http.MethodGet, "/expenses/"+added.ID, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var record expenseDatamodel.Record
			Expect(json.NewDecoder(w.Body).Decode(&record)).To(Succeed())
			Expect(record.ID).To(Equal(added.ID))
		})

		It("should answer 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodGet, "/expenses/nope", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /expenses/{id}", func() {
		It("should answer 204 and remove the expense", func() {
			added := addExpense(expense.CreateExpenseDTO{Amount: 500, Category: "food"})

			req := httptest.NewRequest(http.MethodDelete, "/expenses/"+added.ID, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(svc.Expenses()).To(BeEmpty())
		})

		It("should answer 404 when the id is already gone", func() {
			req := httptest.NewRequest(http.MethodDelete, "/expenses/nope", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
