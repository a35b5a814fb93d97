package base

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository базовый репозиторий с общими методами
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository создаёт новый базовый репозиторий
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Pool возвращает пул соединений
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// QueryRow выполняет запрос и возвращает одну строку
func (r *Repository) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return r.pool.QueryRow(ctx, query, args...)
}

// Query выполняет запрос и возвращает множество строк
func (r *Repository) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return r.pool.Query(ctx, query, args...)
}

// ExecAffected выполняет команду и возвращает количество затронутых строк
func (r *Repository) ExecAffected(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CompareAndSwap выполняет UPDATE с условием на версию.
// Если строка не обновилась, exists различает удалённую запись и устаревшую версию.
func (r *Repository) CompareAndSwap(
	ctx context.Context,
	query string,
	exists func(ctx context.Context) (bool, error),
	notFound, stale error,
	args ...any,
) error {
	n, err := r.ExecAffected(ctx, query, args...)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	ok, err := exists(ctx)
	if err != nil {
		return fmt.Errorf("check existence: %w", err)
	}
	if !ok {
		return notFound
	}
	return stale
}

// Exists проверяет наличие строки с id в таблице
func (r *Repository) Exists(ctx context.Context, table, id string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM "+pgx.Identifier{table}.Sanitize()+" WHERE id = $1)", id).Scan(&ok)
	return ok, err
}

// IsNotFound проверяет является ли ошибка "строка не найдена"
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
