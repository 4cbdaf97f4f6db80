// Package assign реализует HTTP-обработчик назначения абонемента администратором.
//
// Дату окончания и итоговую цену считает сервис. Значения клиента только сверяются.
package assign

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
	"github.com/magabrotheeeer/gym-manager/internal/services/membership"
)

// Handler обрабатывает POST /admin/assign-membership.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает назначение абонемента.
type Service interface {
	Assign(ctx context.Context, req models.AssignRequest) (*models.AssignResult, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Назначить абонемент
// @Description Назначает абонемент пользователю. Действующий абонемент продлевается на длину нового плана.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.AssignRequest true "Назначение"
// @Success 200 {object} response.OKResponse "Результат назначения"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пользователь или абонемент не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/assign-membership [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.assign"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AssignRequest
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
	if adminUID, ok := middlewarectx.UserUIDFrom(r.Context()); ok {
		req.AssignedBy = adminUID
	}

	res, err := h.service.Assign(r.Context(), req)
	switch {
	case errors.Is(err, membership.ErrUserNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	case errors.Is(err, membership.ErrMembershipNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("membership not found"))
		return
	case errors.Is(err, membership.ErrUnknownAddon):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ErrorWithDetails("unknown addon", err.Error()))
		return
	case err != nil:
		log.Error("failed to assign membership", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails("Failed to assign membership", "internal error"))
		return
	}

	log.Info("membership assigned", slog.String("user_uid", req.UserUID), slog.Bool("is_extension", res.IsExtension))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message":      "Membership assigned successfully",
		"assignmentId": res.AssignmentID,
		"expiryDate":   res.ExpiryDate,
		"isExtension":  res.IsExtension,
		"totalPrice":   res.TotalPrice,
	}))
}
