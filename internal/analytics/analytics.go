// Package analytics derives chart-ready summaries from the expense
// collection. Everything here is a pure function of its inputs: no state, no
// side effects, deterministic for identical inputs.
package analytics

import (
	"sort"
	"time"

	"github.com/frahmantamala/spendwise-server/internal/category"
	"github.com/frahmantamala/spendwise-server/internal/expense"
)

// Split is the essential / non-essential partition of a set of expenses.
// The partition is total and exhaustive: every expense lands on exactly one
// side, determined by its category's static type mapping.
type Split struct {
	Essential    float64 `json:"essential"`
	NonEssential float64 `json:"non_essential"`
}

// MonthTotal is one bar of the trailing-months chart.
type MonthTotal struct {
	Month int     `json:"month"`
	Year  int     `json:"year"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// MonthlySummary aggregates one calendar month: total spend, the per-category
// breakdown and the essential split.
type MonthlySummary struct {
	Month      int                `json:"month"`
	Year       int                `json:"year"`
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"by_category"`
	Split      Split              `json:"split"`
}

// Sum adds up expense amounts. Plain float64 addition; rounding and currency
// formatting are display concerns.
func Sum(expenses []expense.Expense) float64 {
	var total float64
	for i := range expenses {
		total += expenses[i].Amount
	}
	return total
}

// FilterMonth returns the expenses whose date falls in the given calendar
// month, preserving relative order. An empty input yields an empty result,
// never an error.
func FilterMonth(expenses []expense.Expense, month time.Month, year int) []expense.Expense {
	out := make([]expense.Expense, 0)
	for _, e := range expenses {
		if e.Date.Month() == month && e.Date.Year() == year {
			out = append(out, e)
		}
	}
	return out
}

// CategoryTotals maps every category in the enumeration to its summed
// amount. The mapping is total, not sparse: categories with no expenses map
// to 0 so chart legends stay stable.
func CategoryTotals(expenses []expense.Expense) map[category.Category]float64 {
	totals := make(map[category.Category]float64, 12)
	for _, c := range category.All() {
		totals[c] = 0
	}
	for i := range expenses {
		totals[expenses[i].Category] += expenses[i].Amount
	}
	return totals
}

// SplitByType partitions expense amounts into essential and non-essential
// sums. A category outside the static mapping counts as non-essential.
func SplitByType(expenses []expense.Expense) Split {
	var s Split
	for i := range expenses {
		if category.IsEssential(expenses[i].Category) {
			s.Essential += expenses[i].Amount
		} else {
			s.NonEssential += expenses[i].Amount
		}
	}
	return s
}

// Recent returns the n most recently created expenses, newest first. The
// sort key is createdAt, not the expense date: backdated entries still show
// up as just logged.
func Recent(expenses []expense.Expense, n int) []expense.Expense {
	out := make([]expense.Expense, len(expenses))
	copy(out, expenses)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// TrailingMonths computes totals for the n calendar months ending at now's
// month inclusive, oldest first.
func TrailingMonths(expenses []expense.Expense, n int, now time.Time) []MonthTotal {
	out := make([]MonthTotal, 0, n)
	for i := n - 1; i >= 0; i-- {
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		out = append(out, MonthTotal{
			Month: int(anchor.Month()),
			Year:  anchor.Year(),
			Label: anchor.Format("Jan"),
			Total: Sum(FilterMonth(expenses, anchor.Month(), anchor.Year())),
		})
	}
	return out
}

// Summarize builds the full summary for one calendar month.
func Summarize(expenses []expense.Expense, month time.Month, year int) MonthlySummary {
	filtered := FilterMonth(expenses, month, year)

	byCategory := make(map[string]float64, 12)
	for c, total := range CategoryTotals(filtered) {
		byCategory[string(c)] = total
	}

	return MonthlySummary{
		Month:      int(month),
		Year:       year,
		Total:      Sum(filtered),
		ByCategory: byCategory,
		Split:      SplitByType(filtered),
	}
}
