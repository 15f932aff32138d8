// Package metrics computes summary values from a user view snapshot. All
// functions are pure and recomputed on every read; the input state is small
// enough that caching would buy nothing.
package metrics

import (
	"math"
	"sort"

	"github.com/aljaz-ferenc/budget-app/models"
)

// TotalIncome sums all income transaction amounts.
func TotalIncome(view models.UserView) float64 {
	var total float64
	for _, t := range view.Incomes {
		total += t.Amount
	}
	return total
}

// TotalExpenses sums the magnitude of every transaction reachable from any
// budget. Expense amounts are stored as positive magnitudes; Abs guards
// against documents written under the old negative-amount convention.
func TotalExpenses(view models.UserView) float64 {
	var total float64
	for _, b := range view.Budgets {
		for _, t := range b.Transactions {
			total += math.Abs(t.Amount)
		}
	}
	return total
}

// TotalBudget sums budget target ceilings, not spend.
func TotalBudget(view models.UserView) float64 {
	var total float64
	for _, b := range view.Budgets {
		total += b.Amount
	}
	return total
}

// TotalSaved sums the accumulated saved amount across all savings goals.
func TotalSaved(view models.UserView) float64 {
	var total float64
	for _, s := range view.Savings {
		total += s.Saved
	}
	return total
}

// TotalSavingsTarget sums savings goal targets.
func TotalSavingsTarget(view models.UserView) float64 {
	var total float64
	for _, s := range view.Savings {
		total += s.Amount
	}
	return total
}

// BudgetSpend is the magnitude spent against a budget.
func BudgetSpend(budget models.Budget) float64 {
	var spend float64
	for _, t := range budget.Transactions {
		spend += math.Abs(t.Amount)
	}
	return spend
}

// BudgetRemaining is the target amount minus spend. Negative means overspent.
func BudgetRemaining(budget models.Budget) float64 {
	return budget.Amount - BudgetSpend(budget)
}

// PercentageSpent reports spend as a fraction of the target, clamped to [0, 1].
// A zero-amount budget or zero spend yields 0.
func PercentageSpent(budget models.Budget) float64 {
	spend := BudgetSpend(budget)
	if budget.Amount == 0 || spend == 0 {
		return 0
	}
	return math.Min(1, spend/budget.Amount)
}

// AllTransactions returns incomes plus every budget's transactions, most
// recent first. The sort is stable so equal timestamps keep insertion order.
func AllTransactions(view models.UserView) []models.Transaction {
	all := make([]models.Transaction, 0, len(view.Incomes))
	all = append(all, view.Incomes...)
	for _, b := range view.Budgets {
		all = append(all, b.Transactions...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}
