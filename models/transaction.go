package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
	TransactionSaving  TransactionType = "saving"
)

// Transaction is a standalone document in the transactions collection. Amounts
// are stored as positive magnitudes regardless of type; the sign is applied at
// aggregation time. BudgetID is a client-side convenience set on denormalized
// expense transactions and is not persisted.
type Transaction struct {
	ID          string          `bson:"_id" json:"id"`
	UserID      string          `bson:"userId" json:"userId"`
	Amount      float64         `bson:"amount" json:"amount"`
	Description string          `bson:"description" json:"description"`
	Type        TransactionType `bson:"type" json:"type"`
	BudgetID    string          `bson:"-" json:"budgetId,omitempty"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
}
