package auth

import (
	"context"
	"regexp"
	"strings"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/store"
)

// MinPasswordLength минимальная длина пароля при регистрации
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// AuthService – обращения к /auth/* бэкенда
type AuthService struct {
	api *apiclient.Client
}

// NewAuthService – конструктор AuthService
func NewAuthService(api *apiclient.Client) *AuthService {
	return &AuthService{api: api}
}

// Bound возвращает сервис, работающий от имени сессии
func (s *AuthService) Bound(sess apiclient.Session) *AuthService {
	return &AuthService{api: s.api.Bound(sess)}
}

// Login отправляет email как username в форме OAuth2 password flow
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := s.api.PostForm(ctx, "/auth/login", map[string]string{
		"username": req.Email,
		"password": req.Password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register создаёт аккаунт
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.api.PostJSON(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me возвращает профиль текущего пользователя
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout только очищает локальную сессию, бэкенд не вызывается
func (s *AuthService) Logout(ctx context.Context, auth *store.AuthStore) error {
	return auth.ClearAuth(ctx)
}

// ValidateLogin проверяет форму входа и возвращает ошибки по полям
func ValidateLogin(req models.LoginRequest) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "Email is required"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

// ValidateRegister проверяет форму регистрации
func ValidateRegister(req models.RegisterRequest, confirmPassword string) map[string]string {
	errs := make(map[string]string)
	switch email := strings.TrimSpace(req.Email); {
	case email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "Email is invalid"
	}
	switch {
	case req.Password == "":
		errs["password"] = "Password is required"
	case len(req.Password) < MinPasswordLength:
		errs["password"] = "Password must be at least 6 characters"
	}
	if confirmPassword != req.Password {
		errs["confirm_password"] = "Passwords do not match"
	}
	return errs
}
