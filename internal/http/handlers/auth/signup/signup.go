// Package signup реализует HTTP-обработчик регистрации пользователя.
package signup

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

// Service описывает бизнес-логику регистрации.
type Service interface {
	Signup(ctx context.Context, email, password, role string) (*models.User, error)
}

// Handler обрабатывает POST /api/auth/signup.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя по email, паролю и роли.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body credentials.Request true "Данные нового пользователя"
// @Success 200 {object} response.Response "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля или некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

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

	user, err := h.service.Signup(r.Context(), req.Email, req.Password, req.Role)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrUserExists):
		log.Info("email already registered", slog.String("email", req.Email))
		writeError(w, r, http.StatusConflict, response.MsgUserExists)
		return
	case errors.Is(err, auth.ErrPasswordTooLong):
		log.Info("password too long")
		writeError(w, r, http.StatusBadRequest, response.MsgPasswordTooLong)
		return
	default:
		log.Error("failed to create user", sl.Err(err))
		writeError(w, r, http.StatusInternalServerError, response.MsgInternalError)
		return
	}

	log.Info("signup success", slog.String("user_id", user.ID), slog.String("role", user.Role))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OKWithUser(response.MsgSignupOK, user))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, response.Error(msg))
}
