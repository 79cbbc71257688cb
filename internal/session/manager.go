// Package session держит в памяти состояние браузерных сессий:
// хранилища авторизации и избранного, а также состояния страниц.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/rajivgeraev/flippy-motors/internal/storage"
	"github.com/rajivgeraev/flippy-motors/internal/store"
)

// Session состояние одной браузерной сессии
type Session struct {
	ID        string
	Auth      *store.AuthStore
	Favorites *store.FavoriteStore

	values   sync.Map
	lastSeen time.Time
}

// Value возвращает значение сессии по ключу, создавая его при первом обращении
func Value[T any](s *Session, key string, create func() T) T {
	if v, ok := s.values.Load(key); ok {
		return v.(T)
	}
	v, _ := s.values.LoadOrStore(key, create())
	return v.(T)
}

// Manager загружает сессии из хранилища и кэширует их в памяти
type Manager struct {
	backend  storage.Backend
	idle     time.Duration
	sessions map[string]*Session
	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewManager создаёт менеджер. Сессии, к которым не обращались дольше idle,
// выгружаются из памяти; их данные остаются в хранилище.
func NewManager(backend storage.Backend, idle time.Duration) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		backend:  backend,
		idle:     idle,
		sessions: make(map[string]*Session),
		ctx:      ctx,
		cancel:   cancel,
	}
	if idle > 0 {
		go m.cleanup()
	}
	return m
}

// Get возвращает сессию, восстанавливая её из хранилища при необходимости
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.lastSeen = time.Now()
		return s, nil
	}

	scope := m.backend.Scope(id)
	auth, err := store.NewAuthStore(ctx, scope)
	if err != nil {
		return nil, err
	}
	favorites, err := store.NewFavoriteStore(ctx, scope)
	if err != nil {
		return nil, err
	}

	s := &Session{ID: id, Auth: auth, Favorites: favorites, lastSeen: time.Now()}
	m.sessions[id] = s
	return s, nil
}

// Len возвращает число сессий в памяти
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Evict выгружает сессии, неактивные дольше idle
func (m *Manager) Evict(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.idle {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Close останавливает фоновую очистку
func (m *Manager) Close() {
	m.cancel()
}

func (m *Manager) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.Evict(now); n > 0 {
				log.Printf("Выгружено неактивных сессий: %d", n)
			}
		}
	}
}
