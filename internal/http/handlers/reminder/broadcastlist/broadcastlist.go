// Package broadcastlist реализует HTTP-обработчик списка действующих рассылок.
package broadcastlist

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

// Handler обрабатывает GET /admin/reminders.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение рассылок.
type Service interface {
	ListBroadcasts(ctx context.Context) ([]*models.BroadcastReminder, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Действующие рассылки
// @Tags Reminders
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.OKResponse "Рассылки"
// @Router /admin/reminders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.broadcastlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.ListBroadcasts(r.Context())
	if err != nil {
		log.Error("failed to list broadcasts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list reminders"))
		return
	}
	if list == nil {
		list = []*models.BroadcastReminder{}
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"reminders": list,
	}))
}
