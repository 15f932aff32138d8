package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/aljaz-ferenc/budget-app/logger"
)

var (
	UsersCollection         string = "users"
	TransactionsCollection  string = "transactions"
	RevokedTokensCollection string = "revoked_tokens"
	MongoDatabase           string = "budget-app"
	MongoClient             *mongo.Client
)

func InitMongoDB(ctx context.Context, uri, database string) error {
	if uri == "" {
		return fmt.Errorf("mongo URI not set")
	}
	if database != "" {
		MongoDatabase = database
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		logger.Get().Error("failed to connect to MongoDB", zap.Error(err))
		return fmt.Errorf("error connecting to MongoDB: %w", err)
	}

	MongoClient = client
	if err := ensureIndexes(ctx); err != nil {
		return err
	}

	logger.Get().Info("successfully connected to MongoDB", zap.String("database", MongoDatabase))
	return nil
}

// ensureIndexes creates the unique email index the registration path relies on
// and the userId index the per-user transaction listing uses.
func ensureIndexes(ctx context.Context) error {
	users := collection(UsersCollection)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("error creating users email index: %w", err)
	}

	transactions := collection(TransactionsCollection)
	_, err = transactions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("error creating transactions userId index: %w", err)
	}
	return nil
}

func CloseMongoDB() {
	if MongoClient != nil {
		if err := MongoClient.Disconnect(context.TODO()); err != nil {
			logger.Get().Error("failed to disconnect from MongoDB", zap.Error(err))
			return
		}
		logger.Get().Info("successfully disconnected from MongoDB")
	}
}

func collection(name string) *mongo.Collection {
	return MongoClient.Database(MongoDatabase).Collection(name)
}
