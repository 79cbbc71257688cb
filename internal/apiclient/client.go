// Package apiclient единая обёртка над HTTP клиентом для обращений к бэкенду
// маркетплейса. Подставляет Bearer токен сессии и сбрасывает сессию на 401.
package apiclient

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"
	"github.com/oklog/ulid/v2"

	"github.com/rajivgeraev/flippy-motors/internal/config"
)

// HeaderRequestID заголовок для сквозной трассировки запросов
const HeaderRequestID = "X-Request-ID"

// Session источник токена и получатель сигнала о его недействительности
type Session interface {
	Token() string
	ClearAuth(ctx context.Context) error
}

// Client обёртка над fiber клиентом. Нулевая сессия означает анонимные запросы.
type Client struct {
	http    *client.Client
	session Session
}

// New создаёт клиент по конфигурации
func New(cfg *config.Config) *Client {
	return NewWithBaseURL(cfg.APIURL, cfg.APITimeout)
}

// NewWithBaseURL создаёт клиент для указанного адреса бэкенда
func NewWithBaseURL(baseURL string, timeout time.Duration) *Client {
	cc := client.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	cc.AddRequestHook(func(_ *client.Client, r *client.Request) error {
		r.SetHeader(HeaderRequestID, ulid.Make().String())
		return nil
	})
	cc.AddResponseHook(func(_ *client.Client, resp *client.Response, r *client.Request) error {
		if status := resp.StatusCode(); status >= http.StatusBadRequest {
			log.Printf("⚠️ %s %s -> %d", r.Method(), r.URL(), status)
		}
		return nil
	})

	return &Client{http: cc}
}

// Bound возвращает клиент, привязанный к сессии
func (c *Client) Bound(s Session) *Client {
	return &Client{http: c.http, session: s}
}

// Get выполняет GET с параметрами строки запроса
func (c *Client) Get(ctx context.Context, path string, params map[string]string, out any) error {
	return c.do(ctx, http.MethodGet, path, out, func(r *client.Request) {
		for k, v := range params {
			r.SetParam(k, v)
		}
	})
}

// PostJSON выполняет POST с JSON телом
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, out, func(r *client.Request) {
		if body != nil {
			r.SetJSON(body)
		}
	})
}

// PostForm выполняет POST с телом application/x-www-form-urlencoded
func (c *Client) PostForm(ctx context.Context, path string, form map[string]string, out any) error {
	return c.do(ctx, http.MethodPost, path, out, func(r *client.Request) {
		for k, v := range form {
			r.SetFormData(k, v)
		}
	})
}

// Delete выполняет DELETE
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, out, nil)
}

func (c *Client) do(ctx context.Context, method, path string, out any, build func(*client.Request)) error {
	req := c.http.R().SetContext(ctx)

	// Токен читается в момент отправки, а не при создании клиента
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
	}
	if build != nil {
		build(req)
	}

	resp, err := req.Custom(path, method)
	if err != nil {
		client.ReleaseRequest(req)
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrTransport, err)
	}
	defer resp.Close()

	status := resp.StatusCode()
	if status == http.StatusUnauthorized && c.session != nil {
		if err := c.session.ClearAuth(ctx); err != nil {
			log.Printf("❌ Не удалось сбросить сессию после 401: %v", err)
		}
	}
	if status < 200 || status > 299 {
		return newAPIError(method, path, status, resp.Body())
	}

	if out == nil || status == http.StatusNoContent || len(resp.Body()) == 0 {
		return nil
	}
	if err := resp.JSON(out); err != nil {
		return fmt.Errorf("%s %s: ошибка разбора ответа: %w", method, path, err)
	}
	return nil
}
