// Package broadcastcreate реализует HTTP-обработчик рассылки напоминания всем пользователям.
//
// Рассылка и персональные копии создаются в одной транзакции, userCount равен
// числу созданных копий.
package broadcastcreate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Handler обрабатывает POST /admin/reminders.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает создание рассылки.
type Service interface {
	CreateBroadcast(ctx context.Context, req models.BroadcastRequest) (*models.BroadcastResult, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Разослать напоминание всем
// @Tags Reminders
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.BroadcastRequest true "Рассылка"
// @Success 201 {object} response.OKResponse "Рассылка создана"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/reminders [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.broadcastcreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.BroadcastRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if uid, ok := middlewarectx.UserUIDFrom(r.Context()); ok {
		req.CreatedBy = uid
	}

	res, err := h.service.CreateBroadcast(r.Context(), req)
	if err != nil {
		log.Error("failed to create broadcast", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails("Failed to send reminder", "internal error"))
		return
	}

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(res))
}
