package models

import "time"

// User is the normalized document stored in the users collection. Budgets embed
// transaction id references, incomes is an id array, savings embeds the Saving
// entities themselves. The password hash never leaves the server.
type User struct {
	ID       string         `bson:"_id" json:"id"`
	Username string         `bson:"username" json:"username"`
	Email    string         `bson:"email" json:"email"`
	Password string         `bson:"password" json:"-"`
	Currency string         `bson:"currency" json:"currency"`
	Budgets  []BudgetRecord `bson:"budgets" json:"budgets"`
	Incomes  []string       `bson:"incomes" json:"incomes"`
	Savings  []Saving       `bson:"savings" json:"savings"`
}

// BudgetRecord is the budget as stored: transactions are references.
type BudgetRecord struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Amount       float64   `bson:"amount" json:"amount"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	Transactions []string  `bson:"transactions" json:"transactions"`
}

// Budget is the denormalized budget: references resolved into full transactions.
type Budget struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Amount       float64       `json:"amount"`
	CreatedAt    time.Time     `json:"createdAt"`
	Transactions []Transaction `json:"transactions"`
}

// Saving is a savings goal. Saved starts at 0 and only ever moves by deltas.
type Saving struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Amount    float64   `bson:"amount" json:"amount"`
	Saved     float64   `bson:"saved" json:"saved"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// UserView is the denormalized view the client works with: every reference
// array replaced by embedded full entities.
type UserView struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Currency string        `json:"currency"`
	Incomes  []Transaction `json:"incomes"`
	Savings  []Saving      `json:"savings"`
	Budgets  []Budget      `json:"budgets"`
}
