package session

import (
	"context"
	"testing"
	"time"

	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/storage"
)

func TestManagerRestoresEvictedSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(storage.NewMemory(), time.Hour)
	defer m.Close()

	s, err := m.Get(ctx, "sid")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := s.Auth.SetAuth(ctx, models.User{ID: "u1"}, "tok"); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}
	if err := s.Favorites.Add(ctx, "5"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	same, _ := m.Get(ctx, "sid")
	if same != s {
		t.Fatal("cached session expected")
	}

	if n := m.Evict(time.Now().Add(2 * time.Hour)); n != 1 {
		t.Fatalf("evicted %d sessions", n)
	}
	if m.Len() != 0 {
		t.Fatalf("Len = %d", m.Len())
	}

	restored, err := m.Get(ctx, "sid")
	if err != nil {
		t.Fatalf("Get after evict: %v", err)
	}
	if restored.Auth.Token() != "tok" || !restored.Favorites.IsFavorite("5") {
		t.Fatal("session state must be restored from storage")
	}
}

func TestValueCreatesOnce(t *testing.T) {
	s := &Session{}
	calls := 0
	create := func() *int {
		calls++
		v := calls
		return &v
	}
	a := Value(s, "k", create)
	b := Value(s, "k", create)
	if a != b || calls != 1 {
		t.Fatalf("Value must cache: a=%p b=%p calls=%d", a, b, calls)
	}
}
