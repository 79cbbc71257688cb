package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTimeout = 10 * time.Second

// Postgres хранилище поверх пула pgx
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres создаёт хранилище и таблицу, если её ещё нет
func NewPostgres(pool *pgxpool.Pool) (*Postgres, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS client_storage (
			scope TEXT NOT NULL,
			item_key TEXT NOT NULL,
			item_value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (scope, item_key)
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания таблицы client_storage: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Scope возвращает хранилище сессии
func (p *Postgres) Scope(scope string) Storage {
	return &postgresScope{pool: p.pool, scope: scope}
}

// Close закрывает пул соединений
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

type postgresScope struct {
	pool  *pgxpool.Pool
	scope string
}

func (s *postgresScope) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `
		SELECT item_value FROM client_storage WHERE scope = $1 AND item_key = $2
	`, s.scope, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ошибка чтения %q: %w", key, err)
	}
	return value, true, nil
}

func (s *postgresScope) SetItem(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO client_storage (scope, item_key, item_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope, item_key) DO UPDATE SET
			item_value = EXCLUDED.item_value,
			updated_at = NOW()
	`, s.scope, key, value)
	if err != nil {
		return fmt.Errorf("ошибка записи %q: %w", key, err)
	}
	return nil
}

func (s *postgresScope) RemoveItem(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM client_storage WHERE scope = $1 AND item_key = $2
	`, s.scope, key)
	if err != nil {
		return fmt.Errorf("ошибка удаления %q: %w", key, err)
	}
	return nil
}
