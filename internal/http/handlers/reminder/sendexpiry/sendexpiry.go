// Package sendexpiry реализует HTTP-обработчик ручной отправки напоминания
// об окончании абонемента.
package sendexpiry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/services/reminder"
)

// Request тело запроса.
type Request struct {
	UserUID string `json:"userId" validate:"required,uuid"`
}

// Handler обрабатывает POST /admin/send-reminder.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает отправку напоминания об окончании абонемента.
type Service interface {
	SendExpiryReminder(ctx context.Context, userUID, createdBy string) (*models.Reminder, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Отправить напоминание об окончании абонемента
// @Tags Reminders
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body sendexpiry.Request true "Пользователь"
// @Success 200 {object} response.OKResponse "Напоминание отправлено"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /admin/send-reminder [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.sendexpiry"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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
	adminUID, _ := middlewarectx.UserUIDFrom(r.Context())

	rem, err := h.service.SendExpiryReminder(r.Context(), req.UserUID, adminUID)
	if errors.Is(err, reminder.ErrUserNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to send expiry reminder", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to send reminder"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"message":  "Reminder sent successfully",
		"reminder": rem,
	}))
}
