package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/aljaz-ferenc/budget-app/models"
)

func CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	_, err := collection(TransactionsCollection).InsertOne(ctx, transaction)
	if err != nil {
		return fmt.Errorf("error creating transaction: %w", err)
	}
	return nil
}

func FindTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := collection(TransactionsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&transaction)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching transaction: %w", err)
	}
	return &transaction, nil
}

func FindTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection(TransactionsCollection).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions: %w", err)
	}
	defer cursor.Close(ctx)

	transactions := []models.Transaction{}
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("error decoding transactions: %w", err)
	}
	return transactions, nil
}

// ResolveReferences fetches the documents for the given ids, returning them in
// id order. References to missing documents are dropped; broken references
// are tolerated, not fatal.
func ResolveReferences(ctx context.Context, ids []string) ([]models.Transaction, error) {
	resolved := []models.Transaction{}
	if len(ids) == 0 {
		return resolved, nil
	}

	cursor, err := collection(TransactionsCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error resolving references: %w", err)
	}
	defer cursor.Close(ctx)

	byID := make(map[string]models.Transaction, len(ids))
	for cursor.Next(ctx) {
		var transaction models.Transaction
		if err := cursor.Decode(&transaction); err != nil {
			return nil, fmt.Errorf("error decoding transaction: %w", err)
		}
		byID[transaction.ID] = transaction
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	for _, id := range ids {
		if transaction, ok := byID[id]; ok {
			resolved = append(resolved, transaction)
		}
	}
	return resolved, nil
}

// UpdateTransactionFields applies a $set and returns the updated document.
func UpdateTransactionFields(ctx context.Context, id string, fields bson.M) (*models.Transaction, error) {
	_, err := collection(TransactionsCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
	)
	if err != nil {
		return nil, fmt.Errorf("error updating transaction: %w", err)
	}
	return FindTransactionByID(ctx, id)
}

func DeleteTransaction(ctx context.Context, id string) error {
	_, err := collection(TransactionsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting transaction: %w", err)
	}
	return nil
}

func DeleteTransactions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := collection(TransactionsCollection).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("error deleting transactions: %w", err)
	}
	return nil
}

// SweepOrphanedTransactions deletes transaction documents referenced by no
// user document and created before the cutoff. The grace cutoff keeps the
// sweep from racing an in-flight create-then-reference sequence.
func SweepOrphanedTransactions(ctx context.Context, olderThan time.Time) (int64, error) {
	users := collection(UsersCollection)
	cursor, err := users.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{
		"incomes":              1,
		"budgets.transactions": 1,
	}))
	if err != nil {
		return 0, fmt.Errorf("error listing referenced transactions: %w", err)
	}
	defer cursor.Close(ctx)

	referenced := []string{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return 0, fmt.Errorf("error decoding user: %w", err)
		}
		referenced = append(referenced, user.Incomes...)
		for _, budget := range user.Budgets {
			referenced = append(referenced, budget.Transactions...)
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, fmt.Errorf("cursor error: %w", err)
	}

	result, err := collection(TransactionsCollection).DeleteMany(ctx, bson.M{
		"_id":       bson.M{"$nin": referenced},
		"createdAt": bson.M{"$lt": olderThan},
	})
	if err != nil {
		return 0, fmt.Errorf("error sweeping orphaned transactions: %w", err)
	}
	return result.DeletedCount, nil
}
