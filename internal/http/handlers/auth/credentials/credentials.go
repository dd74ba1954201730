// Package credentials декодирует и проверяет тело запросов signup/login.
package credentials

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

var (
	// ErrMalformedBody — тело не является JSON-объектом с ожидаемыми типами.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrMissingFields — не заполнено одно из полей email, password, role.
	ErrMissingFields = errors.New("email, password and role are required")
)

var validate = validator.New()

// Request — входные данные signup и login.
type Request struct {
	Email    string `json:"email" validate:"required" example:"a@x.com"`
	Password string `json:"password" validate:"required" example:"p"`
	Role     string `json:"role" validate:"required" example:"user"`
}

// LogValue скрывает пароль при логировании запроса.
func (r Request) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", r.Email),
		slog.String("role", r.Role),
	)
}

// Validate проверяет, что все три поля непустые. Без побочных эффектов.
func Validate(req Request) error {
	if err := validate.Struct(req); err != nil {
		return errors.Join(ErrMissingFields, err)
	}
	return nil
}

// Decode читает JSON-тело. Пустое тело даёт пустой Request, чтобы
// отсутствие полей сообщалось валидатором, а не ошибкой разбора.
func Decode(r *http.Request) (Request, error) {
	var req Request
	if r.Body == nil {
		return req, nil
	}
	err := render.DecodeJSON(r.Body, &req)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return req, nil
	default:
		return Request{}, errors.Join(ErrMalformedBody, err)
	}
}
