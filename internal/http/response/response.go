// Package response формирует единый JSON-конверт ответов auth-эндпоинтов:
// {"success": bool, "message": string, "user": {...}}.
package response

import "github.com/magabrotheeeer/mayukh-auth/internal/models"

// Сообщения, которые видит клиент.
const (
	MsgSignupOK        = "Signup successful."
	MsgLoginOK         = "Login successful."
	MsgRequiredFields  = "Email, password and role are required."
	MsgInvalidBody     = "Invalid request body."
	MsgPasswordTooLong = "Password must not exceed 72 bytes."
	MsgUserExists      = "User with this email already exists."
	MsgInvalidLogin    = "Invalid email or password."
	MsgInvalidRole     = "Invalid role selected."
	MsgInternalError   = "Internal server error."
)

// User — публичное представление пользователя, без пароля.
type User struct {
	ID    string `json:"id" example:"1"`
	Email string `json:"email" example:"a@x.com"`
	Role  string `json:"role" example:"user"`
}

// Response описывает стандартную структуру JSON-ответа.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

// ErrorResponse — тело ошибки для Swagger-документации.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Internal server error."`
}

// OKWithUser возвращает успешный ответ с публичными полями пользователя.
func OKWithUser(msg string, u *models.User) Response {
	return Response{
		Success: true,
		Message: msg,
		User: &User{
			ID:    u.ID,
			Email: u.Email,
			Role:  u.Role,
		},
	}
}

// Error возвращает ответ с success=false и сообщением.
func Error(msg string) Response {
	return Response{
		Success: false,
		Message: msg,
	}
}
