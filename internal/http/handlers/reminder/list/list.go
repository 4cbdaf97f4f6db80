// Package list реализует HTTP-обработчик списка действующих напоминаний.
// Администратор может запросить напоминания другого пользователя через ?userId=.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Handler обрабатывает GET /reminders.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение напоминаний.
type Service interface {
	ListUserReminders(ctx context.Context, userUID string) ([]*models.Reminder, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Действующие напоминания
// @Tags Reminders
// @Produce  json
// @Security BearerAuth
// @Param userId query string false "ID пользователя (только администратор)"
// @Success 200 {object} response.OKResponse "Напоминания"
// @Failure 400 {object} response.ErrorResponse "Некорректный userId"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Router /reminders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := middlewarectx.UserUIDFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	if q := r.URL.Query().Get("userId"); q != "" && middlewarectx.IsAdmin(r.Context()) {
		if _, err := uuid.Parse(q); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid userId"))
			return
		}
		userUID = q
	}

	list, err := h.service.ListUserReminders(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list reminders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list reminders"))
		return
	}
	if list == nil {
		list = []*models.Reminder{}
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"reminders": list,
	}))
}
