// Package assignments реализует HTTP-обработчики истории назначений абонементов.
//
// Пользователь видит только свою историю. Администратор может указать ?userId=
// или получить историю всех пользователей.
package assignments

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

// Handler обрабатывает GET /memberships/assignments и GET /admin/assignments.
type Handler struct {
	log     *slog.Logger
	service Service
	admin   bool
}

// Service описывает чтение истории назначений.
type Service interface {
	ListAssignments(ctx context.Context, userUID string) ([]*models.MembershipAssignment, error)
}

// New создает обработчик собственной истории пользователя.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// NewAdmin создает обработчик истории для администратора.
func NewAdmin(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, admin: true}
}

// ServeHTTP godoc
// @Summary История назначений абонементов
// @Tags Memberships
// @Produce  json
// @Security BearerAuth
// @Param userId query string false "ID пользователя (только администратор)"
// @Success 200 {object} response.OKResponse "История"
// @Failure 400 {object} response.ErrorResponse "Некорректный userId"
// @Router /memberships/assignments [get]
// @Router /admin/assignments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.assignments"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var userUID string
	if h.admin {
		userUID = r.URL.Query().Get("userId")
		if userUID != "" {
			if _, err := uuid.Parse(userUID); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid userId"))
				return
			}
		}
	} else {
		uid, ok := middlewarectx.UserUIDFrom(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}
		userUID = uid
	}

	list, err := h.service.ListAssignments(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list assignments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list assignments"))
		return
	}
	if list == nil {
		list = []*models.MembershipAssignment{}
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"assignments": list,
	}))
}
