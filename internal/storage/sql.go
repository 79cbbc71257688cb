package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Dialect описывает различия SQL между драйверами database/sql
type Dialect struct {
	Name   string
	Schema string
	Upsert string
}

// DialectSQLite диалект SQLite
var DialectSQLite = Dialect{
	Name: "sqlite",
	Schema: `
	CREATE TABLE IF NOT EXISTS client_storage (
		scope TEXT NOT NULL,
		item_key TEXT NOT NULL,
		item_value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (scope, item_key)
	)`,
	Upsert: `
	INSERT INTO client_storage (scope, item_key, item_value, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(scope, item_key) DO UPDATE SET
		item_value = excluded.item_value,
		updated_at = CURRENT_TIMESTAMP`,
}

// DialectMySQL диалект MySQL
var DialectMySQL = Dialect{
	Name: "mysql",
	Schema: `
	CREATE TABLE IF NOT EXISTS client_storage (
		scope VARCHAR(64) NOT NULL,
		item_key VARCHAR(64) NOT NULL,
		item_value MEDIUMTEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (scope, item_key)
	)`,
	Upsert: `
	INSERT INTO client_storage (scope, item_key, item_value)
	VALUES (?, ?, ?)
	ON DUPLICATE KEY UPDATE item_value = VALUES(item_value)`,
}

// SQL хранилище поверх database/sql (SQLite или MySQL)
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQL создаёт хранилище и таблицу, если её ещё нет
func NewSQL(conn *sql.DB, dialect Dialect) (*SQL, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if _, err := conn.ExecContext(ctx, dialect.Schema); err != nil {
		return nil, fmt.Errorf("ошибка создания таблицы client_storage (%s): %w", dialect.Name, err)
	}
	return &SQL{db: conn, dialect: dialect}, nil
}

// Scope возвращает хранилище сессии
func (s *SQL) Scope(scope string) Storage {
	return &sqlScope{parent: s, scope: scope}
}

// Close закрывает соединение
func (s *SQL) Close() error {
	return s.db.Close()
}

type sqlScope struct {
	parent *SQL
	scope  string
}

func (s *sqlScope) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.parent.db.QueryRowContext(ctx,
		`SELECT item_value FROM client_storage WHERE scope = ? AND item_key = ?`,
		s.scope, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ошибка чтения %q: %w", key, err)
	}
	return value, true, nil
}

func (s *sqlScope) SetItem(ctx context.Context, key, value string) error {
	if _, err := s.parent.db.ExecContext(ctx, s.parent.dialect.Upsert, s.scope, key, value); err != nil {
		return fmt.Errorf("ошибка записи %q: %w", key, err)
	}
	return nil
}

func (s *sqlScope) RemoveItem(ctx context.Context, key string) error {
	if _, err := s.parent.db.ExecContext(ctx,
		`DELETE FROM client_storage WHERE scope = ? AND item_key = ?`,
		s.scope, key,
	); err != nil {
		return fmt.Errorf("ошибка удаления %q: %w", key, err)
	}
	return nil
}
