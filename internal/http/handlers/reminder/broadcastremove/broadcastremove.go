// Package broadcastremove реализует HTTP-обработчик удаления рассылки.
package broadcastremove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/services/reminder"
)

// Handler обрабатывает DELETE /broadcast-reminders/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает удаление рассылки.
type Service interface {
	DeleteBroadcast(ctx context.Context, id string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить рассылку
// @Description Персональные копии остаются у пользователей.
// @Tags Reminders
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID рассылки"
// @Success 200 {object} response.OKResponse "Удалено"
// @Failure 404 {object} response.ErrorResponse "Рассылка не найдена"
// @Router /broadcast-reminders/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.broadcastremove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	err := h.service.DeleteBroadcast(r.Context(), id)
	if errors.Is(err, reminder.ErrBroadcastNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Broadcast reminder not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete broadcast", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete reminder"))
		return
	}

	log.Info("broadcast deleted", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "Broadcast reminder deleted successfully",
	}))
}
