package mongodb

import (
	"context"

	"github.com/aljaz-ferenc/budget-app/models"
)

// Users and Transactions adapt the package-level collection operations to the
// source interfaces the aggregation builder consumes.
type Users struct{}

func (Users) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return FindUserByID(ctx, id)
}

func (Users) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return FindUserByEmail(ctx, email)
}

type Transactions struct{}

func (Transactions) ResolveReferences(ctx context.Context, ids []string) ([]models.Transaction, error) {
	return ResolveReferences(ctx, ids)
}
