// Package sweep реализует HTTP-обработчик ручной очистки просроченных напоминаний.
package sweep

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Handler обрабатывает POST /admin/reminders/sweep.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает очистку.
type Service interface {
	Sweep(ctx context.Context) (models.SweepResult, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить просроченные напоминания
// @Tags Reminders
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.OKResponse "Количество удаленных"
// @Router /admin/reminders/sweep [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.sweep"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Sweep(r.Context())
	if err != nil {
		log.Error("failed to sweep reminders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to sweep reminders"))
		return
	}
	render.JSON(w, r, response.OKWithData(res))
}
