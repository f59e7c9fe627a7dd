package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Transaction wraps a GORM transaction. Commit and Rollback are idempotent:
// once either has run, the other becomes a no-op, so a deferred Rollback is
// safe after a successful Commit.
type Transaction struct {
	tx   *gorm.DB
	done bool
}

// NewTransaction starts a transaction on the database.
func NewTransaction(ctx context.Context, db Database) (Transaction, error) {
	tx := db.Session(ctx).Begin()
	if tx.Error != nil {
		return Transaction{}, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	return Transaction{tx: tx}, nil
}

// Session returns the transaction session for executing queries.
func (t Transaction) Session() *gorm.DB {
	return t.tx
}

func (t *Transaction) finish(op string, run func() *gorm.DB) error {
	if t.done {
		return nil
	}
	if err := run().Error; err != nil {
		return fmt.Errorf("%s transaction: %w", op, err)
	}
	t.done = true
	return nil
}

// Commit commits the transaction.
func (t *Transaction) Commit() error {
	return t.finish("commit", t.tx.Commit)
}

// Rollback rolls back the transaction unless it already finished.
func (t *Transaction) Rollback() error {
	return t.finish("rollback", t.tx.Rollback)
}

// WithTransaction runs fn in a transaction, committing on success and
// rolling back when fn returns an error.
func WithTransaction(ctx context.Context, db Database, fn func(tx *gorm.DB) error) error {
	txn, err := NewTransaction(ctx, db)
	if err != nil {
		return err
	}
	defer func() { _ = txn.Rollback() }()

	if err := fn(txn.Session()); err != nil {
		return err
	}
	return txn.Commit()
}
