package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// Response — тело ответа health-check.
type Response struct {
	Status string `json:"status" example:"Server is running"`
}

// Handler отвечает на GET /api/health.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка доступности
// @Tags Health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, Response{Status: "Server is running"})
}
