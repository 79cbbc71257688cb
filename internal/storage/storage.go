// Package storage хранит клиентское состояние браузерной сессии
// в виде пар ключ-значение, по аналогии с localStorage.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rajivgeraev/flippy-motors/internal/config"
	"github.com/rajivgeraev/flippy-motors/internal/db"
)

// Ключи, под которыми клиент хранит своё состояние
const (
	KeyAccessToken = "access_token"
	KeyUser        = "user"
	KeyFavorites   = "favorites"
)

// Storage хранилище одной браузерной сессии
type Storage interface {
	// GetItem возвращает значение и признак его наличия
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Backend выдаёт изолированные хранилища для разных сессий
type Backend interface {
	Scope(scope string) Storage
	Close() error
}

// Open открывает хранилище, выбранное в конфигурации
func Open(cfg *config.Config) (Backend, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return NewMemory(), nil
	case config.StorageSQLite:
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return openSQL(conn, DialectSQLite)
	case config.StorageMySQL:
		conn, err := db.OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return openSQL(conn, DialectMySQL)
	case config.StoragePostgres:
		pool, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		backend, err := NewPostgres(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища: %s", cfg.StorageDriver)
	}
}

// openSQL создаёт хранилище и закрывает соединение, если схему создать не удалось
func openSQL(conn *sql.DB, dialect Dialect) (Backend, error) {
	backend, err := NewSQL(conn, dialect)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return backend, nil
}
