package metrics

import (
	"testing"
	"time"

	"github.com/aljaz-ferenc/budget-app/models"
)

func at(offset time.Duration) time.Time {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(offset)
}

func sampleView() models.UserView {
	return models.UserView{
		Incomes: []models.Transaction{
			{ID: "i1", Amount: 2000, Type: models.TransactionIncome, CreatedAt: at(0)},
			{ID: "i2", Amount: 150, Type: models.TransactionIncome, CreatedAt: at(2 * time.Hour)},
		},
		Savings: []models.Saving{
			{ID: "s1", Amount: 500, Saved: 100},
			{ID: "s2", Amount: 1000, Saved: 250},
		},
		Budgets: []models.Budget{
			{
				ID: "b1", Amount: 300,
				Transactions: []models.Transaction{
					{ID: "e1", Amount: 40, Type: models.TransactionExpense, CreatedAt: at(time.Hour)},
					{ID: "e2", Amount: 60, Type: models.TransactionExpense, CreatedAt: at(3 * time.Hour)},
				},
			},
			{ID: "b2", Amount: 100, Transactions: []models.Transaction{}},
		},
	}
}

func TestTotals(t *testing.T) {
	view := sampleView()

	if got := TotalIncome(view); got != 2150 {
		t.Errorf("TotalIncome = %v, want 2150", got)
	}
	if got := TotalExpenses(view); got != 100 {
		t.Errorf("TotalExpenses = %v, want 100", got)
	}
	if got := TotalBudget(view); got != 400 {
		t.Errorf("TotalBudget = %v, want 400", got)
	}
	if got := TotalSaved(view); got != 350 {
		t.Errorf("TotalSaved = %v, want 350", got)
	}
	if got := TotalSavingsTarget(view); got != 1500 {
		t.Errorf("TotalSavingsTarget = %v, want 1500", got)
	}
}

func TestTotalExpenses_NegativeAmountsCountAsMagnitudes(t *testing.T) {
	view := models.UserView{
		Budgets: []models.Budget{{
			ID: "b1", Amount: 100,
			Transactions: []models.Transaction{
				{ID: "e1", Amount: -30, Type: models.TransactionExpense},
				{ID: "e2", Amount: 20, Type: models.TransactionExpense},
			},
		}},
	}
	if got := TotalExpenses(view); got != 50 {
		t.Errorf("TotalExpenses = %v, want 50", got)
	}
}

func TestBudgetRemaining(t *testing.T) {
	view := sampleView()
	if got := BudgetRemaining(view.Budgets[0]); got != 200 {
		t.Errorf("BudgetRemaining = %v, want 200", got)
	}
	if got := BudgetRemaining(view.Budgets[1]); got != 100 {
		t.Errorf("BudgetRemaining of untouched budget = %v, want 100", got)
	}
}

func TestPercentageSpent(t *testing.T) {
	tests := []struct {
		name   string
		budget models.Budget
		want   float64
	}{
		{
			name: "partial spend",
			budget: models.Budget{Amount: 200, Transactions: []models.Transaction{
				{Amount: 50},
			}},
			want: 0.25,
		},
		{
			name:   "zero amount regardless of spend",
			budget: models.Budget{Amount: 0, Transactions: []models.Transaction{{Amount: 75}}},
			want:   0,
		},
		{
			name:   "zero spend",
			budget: models.Budget{Amount: 200, Transactions: []models.Transaction{}},
			want:   0,
		},
		{
			name: "overspend clamps to exactly 1",
			budget: models.Budget{Amount: 100, Transactions: []models.Transaction{
				{Amount: 80}, {Amount: 90},
			}},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentageSpent(tt.budget); got != tt.want {
				t.Errorf("PercentageSpent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllTransactions_DescendingByCreation(t *testing.T) {
	view := sampleView()
	all := AllTransactions(view)

	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	want := []string{"e2", "i2", "e1", "i1"}
	for i, txn := range all {
		if txn.ID != want[i] {
			t.Errorf("all[%d] = %s, want %s", i, txn.ID, want[i])
		}
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Errorf("ordering violated at %d", i)
		}
	}
}

func TestAllTransactions_StableForEqualTimestamps(t *testing.T) {
	ts := at(0)
	view := models.UserView{
		Incomes: []models.Transaction{
			{ID: "a", CreatedAt: ts},
			{ID: "b", CreatedAt: ts},
		},
		Budgets: []models.Budget{{
			Transactions: []models.Transaction{{ID: "c", CreatedAt: ts}},
		}},
	}
	all := AllTransactions(view)
	want := []string{"a", "b", "c"}
	for i, txn := range all {
		if txn.ID != want[i] {
			t.Errorf("all[%d] = %s, want %s (insertion order for ties)", i, txn.ID, want[i])
		}
	}
}
