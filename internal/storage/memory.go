package storage

import (
	"context"
	"sync"
)

// Memory хранит данные в памяти процесса. Подходит для тестов и разработки.
type Memory struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
}

// NewMemory создаёт пустое хранилище в памяти
func NewMemory() *Memory {
	return &Memory{scopes: make(map[string]map[string]string)}
}

// Scope возвращает хранилище сессии
func (m *Memory) Scope(scope string) Storage {
	return &memoryScope{parent: m, scope: scope}
}

// Close ничего не делает
func (m *Memory) Close() error { return nil }

type memoryScope struct {
	parent *Memory
	scope  string
}

func (s *memoryScope) GetItem(_ context.Context, key string) (string, bool, error) {
	s.parent.mu.RLock()
	defer s.parent.mu.RUnlock()

	value, ok := s.parent.scopes[s.scope][key]
	return value, ok, nil
}

func (s *memoryScope) SetItem(_ context.Context, key, value string) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	items, ok := s.parent.scopes[s.scope]
	if !ok {
		items = make(map[string]string)
		s.parent.scopes[s.scope] = items
	}
	items[key] = value
	return nil
}

func (s *memoryScope) RemoveItem(_ context.Context, key string) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	delete(s.parent.scopes[s.scope], key)
	if len(s.parent.scopes[s.scope]) == 0 {
		delete(s.parent.scopes, s.scope)
	}
	return nil
}
