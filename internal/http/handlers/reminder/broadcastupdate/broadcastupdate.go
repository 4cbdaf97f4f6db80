// Package broadcastupdate реализует HTTP-обработчик изменения рассылки.
// Персональные копии рассылки не меняются.
package broadcastupdate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/services/reminder"
)

// Handler обрабатывает PUT /broadcast-reminders/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает изменение рассылки.
type Service interface {
	UpdateBroadcast(ctx context.Context, id string, upd models.BroadcastUpdate) (*models.BroadcastReminder, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Изменить рассылку
// @Tags Reminders
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID рассылки"
// @Param request body models.BroadcastUpdate true "Изменения"
// @Success 200 {object} response.OKResponse "Рассылка"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Рассылка не найдена"
// @Router /broadcast-reminders/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.broadcastupdate"

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

	var req models.BroadcastUpdate
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	b, err := h.service.UpdateBroadcast(r.Context(), id, req)
	if errors.Is(err, reminder.ErrBroadcastNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Broadcast reminder not found"))
		return
	}
	if err != nil {
		log.Error("failed to update broadcast", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update reminder"))
		return
	}

	log.Info("broadcast updated", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(b))
}
