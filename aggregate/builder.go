// Package aggregate reconstructs the denormalized user view from normalized
// storage: transaction-id references embedded in the user document are resolved
// into full transaction documents.
package aggregate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aljaz-ferenc/budget-app/models"
)

// UserSource fetches the normalized user document.
type UserSource interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TransactionSource resolves id references into full transactions. Results
// come back in the order of ids; references to missing documents are dropped,
// never reported as errors.
type TransactionSource interface {
	ResolveReferences(ctx context.Context, ids []string) ([]models.Transaction, error)
}

// Builder produces the denormalized user view. Login, auto-login and
// registration all go through the same Build path.
type Builder struct {
	Users        UserSource
	Transactions TransactionSource
}

func NewBuilder(users UserSource, transactions TransactionSource) *Builder {
	return &Builder{Users: users, Transactions: transactions}
}

// ViewByID aggregates the view for the user with the given id.
func (b *Builder) ViewByID(ctx context.Context, id string) (*models.UserView, error) {
	user, err := b.Users.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.build(ctx, user)
}

// ViewByEmail aggregates the view for the user with the given email.
func (b *Builder) ViewByEmail(ctx context.Context, email string) (*models.UserView, error) {
	user, err := b.Users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return b.build(ctx, user)
}

// build resolves the income reference array and every budget's transaction
// reference array, preserving budget order and, within a budget, reference
// order. Any resolution failure fails the whole aggregation; a partial view is
// never returned.
func (b *Builder) build(ctx context.Context, user *models.User) (*models.UserView, error) {
	view := &models.UserView{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Currency: user.Currency,
		Incomes:  []models.Transaction{},
		Savings:  []models.Saving{},
		Budgets:  make([]models.Budget, len(user.Budgets)),
	}
	if user.Savings != nil {
		view.Savings = append(view.Savings, user.Savings...)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		incomes, err := b.Transactions.ResolveReferences(gctx, user.Incomes)
		if err != nil {
			return fmt.Errorf("resolving incomes: %w", err)
		}
		view.Incomes = incomes
		return nil
	})

	for i, record := range user.Budgets {
		g.Go(func() error {
			txns, err := b.Transactions.ResolveReferences(gctx, record.Transactions)
			if err != nil {
				return fmt.Errorf("resolving budget %s: %w", record.ID, err)
			}
			for j := range txns {
				txns[j].BudgetID = record.ID
			}
			view.Budgets[i] = models.Budget{
				ID:           record.ID,
				Name:         record.Name,
				Amount:       record.Amount,
				CreatedAt:    record.CreatedAt,
				Transactions: txns,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}
