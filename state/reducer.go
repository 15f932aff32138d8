package state

import "github.com/aljaz-ferenc/budget-app/models"

// Reduce returns the view after applying action. It is pure: the input view is
// never mutated, touched slices are copied, and the same (view, action) pair
// always yields the same result. No I/O happens here; the network mutation has
// already succeeded by the time an action is dispatched.
func Reduce(view models.UserView, action Action) models.UserView {
	switch a := action.(type) {
	case SetUser:
		return cloneView(a.User)

	case AddBudget:
		budget := a.Budget
		if budget.Transactions == nil {
			budget.Transactions = []models.Transaction{}
		}
		view.Budgets = append(cloneBudgets(view.Budgets), budget)
		return view

	case AddSaving:
		view.Savings = append(cloneSavings(view.Savings), a.Saving)
		return view

	case AddTransaction:
		return addTransaction(view, a.Transaction)

	case UpdateSaving:
		savings := cloneSavings(view.Savings)
		for i := range savings {
			if savings[i].ID == a.SavingID {
				if savings[i].Saved == 0 {
					savings[i].Saved = a.Delta
				} else {
					savings[i].Saved += a.Delta
				}
				break
			}
		}
		view.Savings = savings
		return view

	case DeleteSaving:
		savings := make([]models.Saving, 0, len(view.Savings))
		for _, s := range view.Savings {
			if s.ID != a.SavingID {
				savings = append(savings, s)
			}
		}
		view.Savings = savings
		return view

	case DeleteBudget:
		budgets := make([]models.Budget, 0, len(view.Budgets))
		for _, b := range view.Budgets {
			if b.ID != a.BudgetID {
				budgets = append(budgets, b)
			}
		}
		view.Budgets = budgets
		return view

	case DeleteTransaction:
		return deleteTransaction(view, a)

	default:
		return view
	}
}

func addTransaction(view models.UserView, txn models.Transaction) models.UserView {
	switch txn.Type {
	case models.TransactionExpense:
		budgets := cloneBudgets(view.Budgets)
		for i := range budgets {
			if budgets[i].ID == txn.BudgetID {
				budgets[i].Transactions = append(cloneTransactions(budgets[i].Transactions), txn)
				break
			}
		}
		// No matching budget is a defined no-op, not an error.
		view.Budgets = budgets
		return view

	case models.TransactionIncome:
		view.Incomes = append(cloneTransactions(view.Incomes), txn)
		return view

	case models.TransactionSaving:
		// A saving-type transaction payload describes a new goal; it lands in
		// the savings list as an entity with nothing saved yet.
		view.Savings = append(cloneSavings(view.Savings), models.Saving{
			ID:        txn.ID,
			Name:      txn.Description,
			Amount:    txn.Amount,
			CreatedAt: txn.CreatedAt,
		})
		return view

	default:
		return view
	}
}

func deleteTransaction(view models.UserView, a DeleteTransaction) models.UserView {
	if a.Type == models.TransactionIncome {
		incomes := make([]models.Transaction, 0, len(view.Incomes))
		for _, t := range view.Incomes {
			if t.ID != a.TransactionID {
				incomes = append(incomes, t)
			}
		}
		view.Incomes = incomes
		return view
	}

	// A transaction belongs to at most one budget: remove the first match.
	budgets := cloneBudgets(view.Budgets)
	for i := range budgets {
		for j, t := range budgets[i].Transactions {
			if t.ID == a.TransactionID {
				txns := cloneTransactions(budgets[i].Transactions)
				budgets[i].Transactions = append(txns[:j], txns[j+1:]...)
				view.Budgets = budgets
				return view
			}
		}
	}
	view.Budgets = budgets
	return view
}

func cloneView(v models.UserView) models.UserView {
	v.Incomes = cloneTransactions(v.Incomes)
	v.Savings = cloneSavings(v.Savings)
	v.Budgets = cloneBudgets(v.Budgets)
	for i := range v.Budgets {
		v.Budgets[i].Transactions = cloneTransactions(v.Budgets[i].Transactions)
	}
	return v
}

func cloneBudgets(budgets []models.Budget) []models.Budget {
	out := make([]models.Budget, len(budgets))
	copy(out, budgets)
	return out
}

func cloneSavings(savings []models.Saving) []models.Saving {
	out := make([]models.Saving, len(savings))
	copy(out, savings)
	return out
}

func cloneTransactions(txns []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txns))
	copy(out, txns)
	return out
}
