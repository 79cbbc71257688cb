// Package store содержит клиентские хранилища сессии и избранного.
// Каждое изменение сразу записывается в storage.Storage.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/storage"
)

// AuthSnapshot состояние авторизации на момент чтения
type AuthSnapshot struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"is_authenticated"`
}

// AuthStore хранит пользователя и токен текущей сессии
type AuthStore struct {
	mu      sync.RWMutex
	storage storage.Storage
	user    *models.User
	token   string
}

// NewAuthStore создаёт хранилище и восстанавливает сохранённую сессию
func NewAuthStore(ctx context.Context, s storage.Storage) (*AuthStore, error) {
	a := &AuthStore{storage: s}

	token, ok, err := s.GetItem(ctx, storage.KeyAccessToken)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return a, nil
	}

	raw, ok, err := s.GetItem(ctx, storage.KeyUser)
	if err != nil {
		return nil, err
	}
	if ok {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("повреждённые данные пользователя: %w", err)
		}
		a.user = &user
	}
	a.token = token
	return a, nil
}

// SetAuth сохраняет токен и пользователя
func (a *AuthStore) SetAuth(ctx context.Context, user models.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("ошибка сериализации пользователя: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.storage.SetItem(ctx, storage.KeyAccessToken, token); err != nil {
		return err
	}
	if err := a.storage.SetItem(ctx, storage.KeyUser, string(raw)); err != nil {
		// Не оставляем токен без пользователя
		_ = a.storage.RemoveItem(ctx, storage.KeyAccessToken)
		return err
	}

	a.user = &user
	a.token = token
	return nil
}

// ClearAuth удаляет токен и пользователя
func (a *AuthStore) ClearAuth(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.storage.RemoveItem(ctx, storage.KeyAccessToken); err != nil {
		return err
	}
	if err := a.storage.RemoveItem(ctx, storage.KeyUser); err != nil {
		return err
	}

	a.user = nil
	a.token = ""
	return nil
}

// Token возвращает текущий токен или пустую строку
func (a *AuthStore) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// User возвращает копию текущего пользователя
func (a *AuthStore) User() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// IsAuthenticated сообщает, есть ли у сессии токен
func (a *AuthStore) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token != ""
}

// Snapshot возвращает согласованное состояние для отображения
func (a *AuthStore) Snapshot() AuthSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snap := AuthSnapshot{IsAuthenticated: a.token != ""}
	if a.user != nil {
		u := *a.user
		snap.User = &u
	}
	return snap
}
