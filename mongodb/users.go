package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/aljaz-ferenc/budget-app/models"
)

func CreateUser(ctx context.Context, user *models.User) error {
	_, err := collection(UsersCollection).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return findUser(ctx, bson.M{"_id": id})
}

func FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findUser(ctx, bson.M{"email": email})
}

func findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := collection(UsersCollection).FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return &user, nil
}

// SetUserFields applies a $set of top-level profile fields (username, email,
// currency).
func SetUserFields(ctx context.Context, userID string, fields bson.M) error {
	_, err := collection(UsersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

func PushBudget(ctx context.Context, userID string, budget models.BudgetRecord) error {
	result, err := collection(UsersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"budgets": budget}},
	)
	if err != nil {
		return fmt.Errorf("error adding budget: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func PullBudget(ctx context.Context, userID, budgetID string) error {
	_, err := collection(UsersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"budgets": bson.M{"id": budgetID}}},
	)
	if err != nil {
		return fmt.Errorf("error deleting budget: %w", err)
	}
	return nil
}

func PushSaving(ctx context.Context, userID string, saving models.Saving) error {
	result, err := collection(UsersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"savings": saving}},
	)
	if err != nil {
		return fmt.Errorf("error adding saving: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// IncSaving adjusts a saving's accumulated amount by a signed delta. The
// returned bool reports whether any saving matched; a miss is the caller's
// defined no-op, not an error.
func IncSaving(ctx context.Context, userID, savingID string, delta float64) (bool, error) {
	result, err := collection(UsersCollection).UpdateOne(ctx,
		bson.M{"_id": userID, "savings.id": savingID},
		bson.M{"$inc": bson.M{"savings.$.saved": delta}},
	)
	if err != nil {
		return false, fmt.Errorf("error updating saving: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func PullSaving(ctx context.Context, userID, savingID string) error {
	_, err := collection(UsersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"savings": bson.M{"id": savingID}}},
	)
	if err != nil {
		return fmt.Errorf("error deleting saving: %w", err)
	}
	return nil
}

// PushTransactionRef records a reference to a transaction document in the
// user's income array or the matching budget's transaction array. A missing
// budget surfaces as an error so the caller can compensate by deleting the
// already-created transaction document.
func PushTransactionRef(ctx context.Context, userID string, txnType models.TransactionType, budgetID, transactionID string) error {
	var (
		filter bson.M
		update bson.M
	)
	switch txnType {
	case models.TransactionExpense:
		filter = bson.M{"_id": userID, "budgets.id": budgetID}
		update = bson.M{"$push": bson.M{"budgets.$.transactions": transactionID}}
	case models.TransactionIncome:
		filter = bson.M{"_id": userID}
		update = bson.M{"$push": bson.M{"incomes": transactionID}}
	default:
		return fmt.Errorf("unsupported transaction type %q", txnType)
	}

	result, err := collection(UsersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error referencing transaction: %w", err)
	}
	if result.MatchedCount == 0 {
		if txnType == models.TransactionExpense {
			return fmt.Errorf("budget %s not found for user %s", budgetID, userID)
		}
		return models.ErrUserNotFound
	}
	return nil
}

// PullTransactionRef removes a transaction reference from the user document.
func PullTransactionRef(ctx context.Context, userID string, txnType models.TransactionType, budgetID, transactionID string) error {
	var (
		filter bson.M
		update bson.M
	)
	switch txnType {
	case models.TransactionExpense:
		filter = bson.M{"_id": userID, "budgets.id": budgetID}
		update = bson.M{"$pull": bson.M{"budgets.$.transactions": transactionID}}
	case models.TransactionIncome:
		filter = bson.M{"_id": userID}
		update = bson.M{"$pull": bson.M{"incomes": transactionID}}
	default:
		return fmt.Errorf("unsupported transaction type %q", txnType)
	}

	if _, err := collection(UsersCollection).UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error removing transaction reference: %w", err)
	}
	return nil
}
