package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rajivgeraev/flippy-motors/internal/storage"
)

// FavoriteStore хранит упорядоченный список ID избранных автомобилей.
// Повторное добавление не создаёт дубликатов.
type FavoriteStore struct {
	mu      sync.RWMutex
	storage storage.Storage
	ids     []string
}

// NewFavoriteStore создаёт хранилище и загружает сохранённый список
func NewFavoriteStore(ctx context.Context, s storage.Storage) (*FavoriteStore, error) {
	f := &FavoriteStore{storage: s}

	raw, ok, err := s.GetItem(ctx, storage.KeyFavorites)
	if err != nil {
		return nil, err
	}
	if !ok {
		return f, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("повреждённый список избранного: %w", err)
	}
	f.ids = dedupe(ids)
	return f, nil
}

// Add добавляет ID в конец списка, если его там ещё нет
func (f *FavoriteStore) Add(ctx context.Context, vehicleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if slices.Contains(f.ids, vehicleID) {
		return nil
	}
	// ID может ссылаться на буфер запроса, храним свою копию
	return f.persist(ctx, append(slices.Clone(f.ids), strings.Clone(vehicleID)))
}

// Remove удаляет ID из списка
func (f *FavoriteStore) Remove(ctx context.Context, vehicleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !slices.Contains(f.ids, vehicleID) {
		return nil
	}
	next := slices.DeleteFunc(slices.Clone(f.ids), func(id string) bool { return id == vehicleID })
	return f.persist(ctx, next)
}

// Replace заменяет список целиком, например после загрузки с сервера
func (f *FavoriteStore) Replace(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.persist(ctx, dedupe(ids))
}

// IsFavorite сообщает, есть ли ID в избранном
func (f *FavoriteStore) IsFavorite(vehicleID string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Contains(f.ids, vehicleID)
}

// IDs возвращает копию списка
func (f *FavoriteStore) IDs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.ids)
}

// Count возвращает число избранных автомобилей
func (f *FavoriteStore) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.ids)
}

// persist пишет список в хранилище и только потом меняет состояние в памяти
func (f *FavoriteStore) persist(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("ошибка сериализации избранного: %w", err)
	}
	if err := f.storage.SetItem(ctx, storage.KeyFavorites, string(raw)); err != nil {
		return err
	}
	f.ids = ids
	return nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, strings.Clone(id))
	}
	return out
}
