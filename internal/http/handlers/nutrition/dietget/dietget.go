// Package dietget реализует HTTP-обработчик чтения плана питания на дату.
package dietget

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/services/nutrition"
)

// Handler обрабатывает GET /diet.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение плана питания.
type Service interface {
	GetDiet(ctx context.Context, userUID, date string) (*models.Diet, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary План питания
// @Description Без параметра date возвращается план на сегодня.
// @Tags Nutrition
// @Produce  json
// @Security BearerAuth
// @Param date query string false "Дата YYYY-MM-DD"
// @Success 200 {object} response.OKResponse "План питания"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Router /diet [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.nutrition.dietget"

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

	d, err := h.service.GetDiet(r.Context(), uid, r.URL.Query().Get("date"))
	if errors.Is(err, nutrition.ErrInvalidDate) {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("date must be in YYYY-MM-DD format"))
		return
	}
	if err != nil {
		log.Error("failed to get diet", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get diet"))
		return
	}

	render.JSON(w, r, response.OKWithData(d))
}
