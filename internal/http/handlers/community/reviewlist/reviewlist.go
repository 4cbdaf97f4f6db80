// Package reviewlist реализует HTTP-обработчик списка отзывов.
package reviewlist

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

// Handler обрабатывает GET /reviews.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение отзывов.
type Service interface {
	ListReviews(ctx context.Context) ([]*models.Review, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отзывы о зале
// @Tags Community
// @Produce  json
// @Success 200 {object} response.OKResponse "Отзывы"
// @Router /reviews [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.community.reviewlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.ListReviews(r.Context())
	if err != nil {
		log.Error("failed to list reviews", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list reviews"))
		return
	}
	if list == nil {
		list = []*models.Review{}
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"reviews": list,
	}))
}
