package repositories

import (
	"context"
	"database/sql"
)

// Tx is the transaction handle the service layer drives: the executor methods
// plus commit and rollback. Satisfied by *sql.Tx.
type Tx interface {
	SQLExecutor
	Commit() error
	Rollback() error
}

// TxBeginner starts serializable transactions.
type TxBeginner interface {
	BeginSerializable(ctx context.Context) (Tx, error)
}

type sqlTxBeginner struct {
	db *sql.DB
}

// NewTxBeginner wraps db as a TxBeginner.
func NewTxBeginner(db *sql.DB) TxBeginner {
	return sqlTxBeginner{db: db}
}

func (b sqlTxBeginner) BeginSerializable(ctx context.Context) (Tx, error) {
	return b.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
}
