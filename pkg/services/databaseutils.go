package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// TransactionCallback defines the callback function for database transactions
type TransactionCallback func(ctx mongo.SessionContext) (any, error)

// ExecuteTransaction runs the callback inside a multi-document transaction
// with majority write concern. The callback's writes become visible
// atomically or not at all.
func ExecuteTransaction(client *mongo.Client, ctx context.Context, callback TransactionCallback) (any, error) {
	wc := writeconcern.New(writeconcern.WMajority())
	txnOptions := options.Transaction().SetWriteConcern(wc)
	session, err := client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, callback, txnOptions)
}

// TxnRunner abstracts the storage transaction boundary so write
// coordinators can be exercised against fakes. The function passed in must
// treat a returned error as a rollback of everything it did.
type TxnRunner func(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error)

// MongoTxnRunner adapts ExecuteTransaction to the TxnRunner shape. The
// session context it hands to fn must be the one used for every storage
// call inside the transaction.
func MongoTxnRunner(client *mongo.Client) TxnRunner {
	return func(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
		return ExecuteTransaction(client, ctx, func(sc mongo.SessionContext) (any, error) {
			return fn(sc)
		})
	}
}
