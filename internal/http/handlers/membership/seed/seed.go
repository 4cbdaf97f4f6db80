// Package seed реализует HTTP-обработчик заполнения каталога абонементов.
package seed

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
)

// Handler обрабатывает POST /admin/memberships/seed.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает заполнение каталога.
type Service interface {
	SeedPlans(ctx context.Context) (int, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Заполнить каталог абонементов
// @Description Добавляет отсутствующие стандартные абонементы. Повторный вызов ничего не меняет.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.OKResponse "Количество добавленных"
// @Router /admin/memberships/seed [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.seed"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	inserted, err := h.service.SeedPlans(r.Context())
	if err != nil {
		log.Error("failed to seed memberships", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to seed memberships"))
		return
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"inserted": inserted,
	}))
}
