package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rajivgeraev/flippy-motors/internal/db"
)

func openBackends(t *testing.T) map[string]Backend {
	t.Helper()

	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "storage.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlite, err := NewSQL(conn, DialectSQLite)
	if err != nil {
		t.Fatalf("NewSQL: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Backend{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestBackends(t *testing.T) {
	ctx := context.Background()

	for name, backend := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			s := backend.Scope("session-a")

			if _, ok, err := s.GetItem(ctx, KeyAccessToken); err != nil || ok {
				t.Fatalf("empty GetItem = ok %v err %v", ok, err)
			}

			if err := s.SetItem(ctx, KeyAccessToken, "t1"); err != nil {
				t.Fatalf("SetItem: %v", err)
			}
			if err := s.SetItem(ctx, KeyAccessToken, "t2"); err != nil {
				t.Fatalf("SetItem overwrite: %v", err)
			}
			value, ok, err := s.GetItem(ctx, KeyAccessToken)
			if err != nil || !ok || value != "t2" {
				t.Fatalf("GetItem = %q %v %v, want t2", value, ok, err)
			}

			// Другая сессия не видит чужих данных
			other := backend.Scope("session-b")
			if _, ok, _ := other.GetItem(ctx, KeyAccessToken); ok {
				t.Fatal("scopes must be isolated")
			}

			if err := s.RemoveItem(ctx, KeyAccessToken); err != nil {
				t.Fatalf("RemoveItem: %v", err)
			}
			if _, ok, _ := s.GetItem(ctx, KeyAccessToken); ok {
				t.Fatal("item must be removed")
			}
			if err := s.RemoveItem(ctx, "missing"); err != nil {
				t.Fatalf("RemoveItem missing: %v", err)
			}
		})
	}
}

func TestOpenSQLClosesConnectionOnSchemaError(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "broken.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}

	broken := DialectSQLite
	broken.Schema = "CREATE TABLE client_storage ("
	if _, err := openSQL(conn, broken); err == nil {
		t.Fatal("openSQL must fail on a bad schema")
	}
	if err := conn.PingContext(context.Background()); err == nil {
		t.Fatal("connection must be closed after a failed open")
	}
}
