package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport запрос не дошёл до бэкенда или ответ не был получен
var ErrTransport = errors.New("ошибка соединения с бэкендом")

// APIError ответ бэкенда со статусом вне диапазона 2xx
type APIError struct {
	Method string
	Path   string
	Status int
	Detail string
	Body   []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// IsUnauthorized сообщает, что бэкенд отклонил токен
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsNotFound сообщает, что ресурс не найден
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// StatusOf возвращает HTTP статус ошибки бэкенда или 0
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func hasStatus(err error, status int) bool {
	return StatusOf(err) == status
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	apiErr := &APIError{
		Method: method,
		Path:   path,
		Status: status,
		Body:   append([]byte(nil), body...),
	}

	// FastAPI отдаёт {"detail": "..."}, остальные сервисы {"error": "..."}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		var detail string
		switch {
		case json.Unmarshal(payload.Detail, &detail) == nil:
			apiErr.Detail = detail
		case len(payload.Detail) > 0:
			apiErr.Detail = string(payload.Detail)
		default:
			apiErr.Detail = payload.Error
		}
	}
	return apiErr
}
