package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rajivgeraev/flippy-motors/internal/session"
	"github.com/rajivgeraev/flippy-motors/internal/utils"
)

// SessionCookie имя cookie браузерной сессии
const SessionCookie = "flippy_session"

const sessionLocal = "session"

// SessionMiddleware находит или создаёт браузерную сессию и кладёт её в контекст
func SessionMiddleware(jwtService *utils.JWTService, manager *session.Manager, secureCookie bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		sessionID := ""

		// Проверяем подпись cookie
		if raw := c.Cookies(SessionCookie); raw != "" {
			sid, err := jwtService.ExtractSessionID(raw)
			if err == nil {
				if _, err := uuid.Parse(sid); err == nil {
					sessionID = sid
				}
			}
		}

		// Новая сессия
		if sessionID == "" {
			sessionID = uuid.New().String()
			token, err := jwtService.GenerateToken(sessionID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to create session")
			}
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    token,
				Path:     "/",
				Expires:  time.Now().Add(utils.SessionTTL),
				HTTPOnly: true,
				Secure:   secureCookie,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		sess, err := manager.Get(c.Context(), sessionID)
		if err != nil {
			log.Printf("❌ Ошибка загрузки сессии %s: %v", sessionID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load session")
		}

		c.Locals(sessionLocal, sess)
		return c.Next()
	}
}

// SessionFrom возвращает сессию текущего запроса
func SessionFrom(c fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionLocal).(*session.Session)
	return sess
}

// RequireAuth пропускает только авторизованные сессии
func RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		sess := SessionFrom(c)
		if sess == nil || !sess.Auth.IsAuthenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":    "Authentication required",
				"redirect": "/login",
			})
		}
		return c.Next()
	}
}
