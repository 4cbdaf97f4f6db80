// Package targetsget реализует HTTP-обработчик чтения дневных норм нутриентов.
package targetsget

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Handler обрабатывает GET /targets.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение норм.
type Service interface {
	GetTargets(ctx context.Context, userUID string) (models.Targets, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Дневные нормы
// @Tags Nutrition
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.OKResponse "Нормы"
// @Router /targets [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.nutrition.targetsget"

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

	t, err := h.service.GetTargets(r.Context(), uid)
	if err != nil {
		log.Error("failed to get targets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get targets"))
		return
	}
	render.JSON(w, r, response.OKWithData(t))
}
