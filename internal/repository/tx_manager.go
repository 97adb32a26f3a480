package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TxManager выполняет fn в транзакции: commit при nil, rollback при ошибке
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos *Repository) error) error
}

type PostgresTxManager struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresTxManager(pool *pgxpool.Pool, logger *zap.Logger) *PostgresTxManager {
	return &PostgresTxManager{pool: pool, logger: logger}
}

func (m *PostgresTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos *Repository) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, NewPostgres(tx, m.logger)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
