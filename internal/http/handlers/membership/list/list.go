// Package list реализует HTTP-обработчик каталога абонементов.
package list

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

// Handler обрабатывает GET /memberships.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение каталога.
type Service interface {
	ListPlans(ctx context.Context) ([]*models.Membership, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Каталог абонементов
// @Tags Memberships
// @Produce  json
// @Success 200 {object} response.OKResponse "Абонементы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /memberships [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		log.Error("failed to list memberships", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list memberships"))
		return
	}
	if plans == nil {
		plans = []*models.Membership{}
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"memberships": plans,
	}))
}
