// Package remove реализует HTTP-обработчик удаления напоминания.
package remove

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

// Handler обрабатывает DELETE /reminders/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает удаление напоминания.
type Service interface {
	DeleteReminder(ctx context.Context, id string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить напоминание
// @Tags Reminders
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID напоминания"
// @Success 200 {object} response.OKResponse "Удалено"
// @Failure 404 {object} response.ErrorResponse "Напоминание не найдено"
// @Router /reminders/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.remove"

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

	err := h.service.DeleteReminder(r.Context(), id)
	if errors.Is(err, reminder.ErrReminderNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Reminder not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete reminder", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete reminder"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "Reminder deleted successfully",
	}))
}
