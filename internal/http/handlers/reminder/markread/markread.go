// Package markread реализует HTTP-обработчик отметки напоминания прочитанным.
// Отметить можно только собственное напоминание.
package markread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/services/reminder"
)

// Handler обрабатывает POST /reminders/{id}/read.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает отметку прочтения.
type Service interface {
	MarkRead(ctx context.Context, id, userUID string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отметить напоминание прочитанным
// @Tags Reminders
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID напоминания"
// @Success 200 {object} response.OKResponse "Отмечено"
// @Failure 404 {object} response.ErrorResponse "Напоминание не найдено"
// @Router /reminders/{id}/read [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.markread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := middlewarectx.UserUIDFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	err := h.service.MarkRead(r.Context(), id, uid)
	if errors.Is(err, reminder.ErrReminderNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Reminder not found"))
		return
	}
	if err != nil {
		log.Error("failed to mark reminder read", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update reminder"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "Reminder marked as read",
	}))
}
