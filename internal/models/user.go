package models

// User представляет профиль пользователя, возвращаемый бэкендом
type User struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	CreatedAt   string  `json:"created_at"`
}

// LoginRequest данные для входа
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest данные для регистрации
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// AuthResponse ответ бэкенда после входа или регистрации
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
