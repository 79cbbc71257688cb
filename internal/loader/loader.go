// Package loader реализует цикл загрузки страницы
// idle -> loading -> success | error с отбрасыванием устаревших ответов.
package loader

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStale возвращается, если за время запроса был отправлен более новый
var ErrStale = errors.New("ответ устарел")

// Status стадия загрузки
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State последнее применённое состояние загрузки
type State[T any] struct {
	Status     Status    `json:"status"`
	Generation uint64    `json:"generation"`
	Data       T         `json:"data"`
	Error      string    `json:"error,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Loader хранит состояние одной страницы одной сессии.
// Каждый Run получает номер поколения; ответ применяется, только если
// его поколение всё ещё последнее. Предыдущий запрос при этом отменяется.
type Loader[T any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State[T]
}

// New создаёт загрузчик в состоянии idle
func New[T any]() *Loader[T] {
	return &Loader[T]{state: State[T]{Status: StatusIdle}}
}

// Run запускает fetch и применяет результат, если он не устарел
func (l *Loader[T]) Run(ctx context.Context, fetch func(ctx context.Context) (T, error)) (State[T], error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	l.cancel = cancel
	l.state.Status = StatusLoading
	l.state.Generation = gen
	l.state.Error = ""
	l.state.UpdatedAt = time.Now()
	l.mu.Unlock()

	data, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		return l.state, ErrStale
	}
	l.cancel = nil

	l.state.UpdatedAt = time.Now()
	if err != nil {
		var zero T
		l.state.Status = StatusError
		l.state.Data = zero
		l.state.Error = err.Error()
		return l.state, err
	}
	l.state.Status = StatusSuccess
	l.state.Data = data
	return l.state, nil
}

// State возвращает текущее состояние
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}
