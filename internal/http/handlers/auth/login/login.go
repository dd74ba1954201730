// Package login реализует HTTP-обработчик входа пользователя.
//
// Тело запроса декодируется и проверяется пакетом credentials, затем
// email, пароль и роль сверяются сервисом. Отсутствующий пользователь и
// неверный пароль дают одинаковый ответ 401; несовпадение роли — отдельное
// сообщение.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mayukh-auth/internal/http/handlers/auth/credentials"
	"github.com/magabrotheeeer/mayukh-auth/internal/http/response"
	"github.com/magabrotheeeer/mayukh-auth/internal/lib/sl"
	"github.com/magabrotheeeer/mayukh-auth/internal/models"
	"github.com/magabrotheeeer/mayukh-auth/internal/services/auth"
)

// Service описывает бизнес-логику входа.
type Service interface {
	Login(ctx context.Context, email, password, role string) (*models.User, error)
}

// Handler обрабатывает POST /api/auth/login.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис аутентификации
}

// New создает Handler с логгером и сервисом аутентификации.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email, пароль и роль. Возвращает публичные данные пользователя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body credentials.Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля или некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные или роль"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req, err := credentials.Decode(r)
	if err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		writeError(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return
	}
	log.Debug("request body decoded", slog.Any("request", req))

	if err := credentials.Validate(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		writeError(w, r, http.StatusBadRequest, response.MsgRequiredFields)
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password, req.Role)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidCredentials):
		log.Info("invalid credentials")
		writeError(w, r, http.StatusUnauthorized, response.MsgInvalidLogin)
		return
	case errors.Is(err, auth.ErrInvalidRole):
		log.Info("role mismatch", slog.String("role", req.Role))
		writeError(w, r, http.StatusUnauthorized, response.MsgInvalidRole)
		return
	default:
		log.Error("failed to query user", sl.Err(err))
		writeError(w, r, http.StatusInternalServerError, response.MsgInternalError)
		return
	}

	log.Info("login success", slog.String("user_id", user.ID))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OKWithUser(response.MsgLoginOK, user))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, response.Error(msg))
}
