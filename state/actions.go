package state

import "github.com/aljaz-ferenc/budget-app/models"

// Action is a sealed set of state transitions. Every mutation of the local
// user view goes through one of these; nothing mutates the view directly.
type Action interface {
	isAction()
}

// SetUser replaces the whole view with a server-provided snapshot. Used after
// login and auto-login; the payload fully supersedes prior state.
type SetUser struct {
	User models.UserView
}

// AddBudget appends a budget. Its transaction list starts empty.
type AddBudget struct {
	Budget models.Budget
}

// AddSaving appends a savings goal.
type AddSaving struct {
	Saving models.Saving
}

// AddTransaction routes by transaction type: expenses land in the matching
// budget (silent no-op when no budget matches), incomes in the income list.
type AddTransaction struct {
	Transaction models.Transaction
}

// UpdateSaving applies a signed funding delta to the saving with the given id.
// No-op when the id matches nothing.
type UpdateSaving struct {
	SavingID string
	Delta    float64
}

// DeleteSaving removes the saving with the given id.
type DeleteSaving struct {
	SavingID string
}

// DeleteBudget removes the budget with the given id, leaving all others intact.
type DeleteBudget struct {
	BudgetID string
}

// DeleteTransaction removes an income by id, or scans every budget's
// transaction list and removes the first match.
type DeleteTransaction struct {
	TransactionID string
	Type          models.TransactionType
}

func (SetUser) isAction()           {}
func (AddBudget) isAction()         {}
func (AddSaving) isAction()         {}
func (AddTransaction) isAction()    {}
func (UpdateSaving) isAction()      {}
func (DeleteSaving) isAction()      {}
func (DeleteBudget) isAction()      {}
func (DeleteTransaction) isAction() {}
