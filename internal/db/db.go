package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// OpenPostgres создаёт пул соединений с PostgreSQL
func OpenPostgres(databaseURL string) (*pgxpool.Pool, error) {
	log.Println("Подключение к PostgreSQL")

	// Создаем контекст с таймаутом для подключения
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Настраиваем конфигурацию пула соединений
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе URL базы данных: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пула соединений: %w", err)
	}

	// Проверяем соединение
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка при проверке соединения: %w", err)
	}

	log.Println("✅ Успешное подключение к PostgreSQL")
	return pool, nil
}

// OpenSQLite открывает файл SQLite (чистый Go драйвер)
func OpenSQLite(path string) (*sql.DB, error) {
	return openSQL("sqlite", path)
}

// OpenMySQL открывает соединение с MySQL
func OpenMySQL(dsn string) (*sql.DB, error) {
	return openSQL("mysql", dsn)
}

func openSQL(driver, dsn string) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии %s: %w", driver, err)
	}

	ctx, cancel := GetContext()
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ошибка при проверке соединения %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// SQLite не любит параллельную запись из нескольких соединений
		conn.SetMaxOpenConns(1)
	}

	log.Printf("✅ Успешное подключение к %s\n", driver)
	return conn, nil
}

// GetContext возвращает контекст с таймаутом для запросов к базе данных
func GetContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
