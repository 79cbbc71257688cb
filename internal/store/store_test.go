package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/storage"
)

func TestAuthStoreSurvivesReload(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()

	auth, err := NewAuthStore(ctx, backend.Scope("s1"))
	if err != nil {
		t.Fatalf("NewAuthStore: %v", err)
	}
	if auth.IsAuthenticated() {
		t.Fatal("fresh store must be unauthenticated")
	}

	name := "Nguyen Van A"
	user := models.User{ID: "u-1", Email: "a@example.com", FullName: &name}
	if err := auth.SetAuth(ctx, user, "tok-1"); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}

	// Имитация перезагрузки страницы
	reloaded, err := NewAuthStore(ctx, backend.Scope("s1"))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsAuthenticated() || reloaded.Token() != "tok-1" {
		t.Fatalf("reloaded store lost the session: %+v", reloaded.Snapshot())
	}
	if got := reloaded.User(); got == nil || !reflect.DeepEqual(*got, user) {
		t.Fatalf("reloaded user = %+v, want %+v", got, user)
	}

	if err := reloaded.ClearAuth(ctx); err != nil {
		t.Fatalf("ClearAuth: %v", err)
	}
	if reloaded.IsAuthenticated() || reloaded.Token() != "" || reloaded.User() != nil {
		t.Fatalf("ClearAuth left state behind: %+v", reloaded.Snapshot())
	}

	again, err := NewAuthStore(ctx, backend.Scope("s1"))
	if err != nil {
		t.Fatalf("reload after clear: %v", err)
	}
	if again.IsAuthenticated() {
		t.Fatal("cleared session must not come back after reload")
	}
	if _, ok, _ := backend.Scope("s1").GetItem(ctx, storage.KeyAccessToken); ok {
		t.Fatal("token must be removed from storage")
	}
}

func TestFavoriteStore(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()

	favs, err := NewFavoriteStore(ctx, backend.Scope("s1"))
	if err != nil {
		t.Fatalf("NewFavoriteStore: %v", err)
	}

	if err := favs.Add(ctx, "42"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !favs.IsFavorite("42") {
		t.Fatal("42 must be a favorite")
	}
	if err := favs.Add(ctx, "42"); err != nil {
		t.Fatalf("Add again: %v", err)
	}
	if favs.Count() != 1 {
		t.Fatalf("duplicate add produced %d entries", favs.Count())
	}

	if err := favs.Add(ctx, "7"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	reloaded, err := NewFavoriteStore(ctx, backend.Scope("s1"))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.IDs(); !reflect.DeepEqual(got, []string{"42", "7"}) {
		t.Fatalf("reloaded ids = %v", got)
	}

	if err := favs.Remove(ctx, "42"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if favs.IsFavorite("42") {
		t.Fatal("42 must be removed")
	}
}

func TestFavoriteStoreReplaceDedupes(t *testing.T) {
	ctx := context.Background()
	favs, err := NewFavoriteStore(ctx, storage.NewMemory().Scope("s1"))
	if err != nil {
		t.Fatalf("NewFavoriteStore: %v", err)
	}
	if err := favs.Replace(ctx, []string{"1", "2", "1", "", "3"}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := favs.IDs(); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Fatalf("IDs = %v", got)
	}
}

func TestLogoutKeepsFavorites(t *testing.T) {
	ctx := context.Background()
	scope := storage.NewMemory().Scope("s1")

	auth, _ := NewAuthStore(ctx, scope)
	favs, _ := NewFavoriteStore(ctx, scope)

	_ = auth.SetAuth(ctx, models.User{ID: "u"}, "tok")
	_ = favs.Add(ctx, "9")
	if err := auth.ClearAuth(ctx); err != nil {
		t.Fatalf("ClearAuth: %v", err)
	}
	if !favs.IsFavorite("9") {
		t.Fatal("logout must not clear favorites")
	}
}

// failingRemove хранилище, которое не умеет удалять
type failingRemove struct {
	storage.Storage
}

func (failingRemove) RemoveItem(context.Context, string) error {
	return errors.New("disk full")
}

func TestClearAuthFailureKeepsMemoryInSync(t *testing.T) {
	ctx := context.Background()
	scope := storage.NewMemory().Scope("s1")

	auth, err := NewAuthStore(ctx, failingRemove{scope})
	if err != nil {
		t.Fatalf("NewAuthStore: %v", err)
	}
	if err := auth.SetAuth(ctx, models.User{ID: "u-1"}, "tok-1"); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}

	if err := auth.ClearAuth(ctx); err == nil {
		t.Fatal("ClearAuth must report the storage error")
	}

	reloaded, err := NewAuthStore(ctx, scope)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if auth.IsAuthenticated() != reloaded.IsAuthenticated() || auth.Token() != reloaded.Token() {
		t.Fatalf("memory %+v diverged from storage %+v", auth.Snapshot(), reloaded.Snapshot())
	}
}
