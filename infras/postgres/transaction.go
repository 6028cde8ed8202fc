package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./transaction.go -destination=./mocks/transaction_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

type Transactor interface {
	WithTransaction(ctx context.Context, fn TxFunc) error
}

// WithTransaction runs fn on the write connection. The transaction commits when fn returns nil
// and rolls back on error or panic; fn's error is returned as is.
func (c *Connection) WithTransaction(ctx context.Context, fn TxFunc) (err error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func NewTransactor(conn *Connection) Transactor {
	return conn
}
