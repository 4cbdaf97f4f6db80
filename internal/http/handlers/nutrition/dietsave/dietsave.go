// Package dietsave реализует HTTP-обработчик сохранения плана питания на сегодня.
package dietsave

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

// Request тело запроса.
type Request struct {
	Foods []models.Food `json:"dietPlan" validate:"dive"`
}

// Handler обрабатывает POST /diet.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает сохранение плана питания.
type Service interface {
	SaveDiet(ctx context.Context, userUID string, foods []models.Food) (*models.Diet, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Сохранить план питания на сегодня
// @Description Повторное сохранение в тот же день заменяет список продуктов.
// @Tags Nutrition
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body dietsave.Request true "Продукты"
// @Success 200 {object} response.OKResponse "План питания"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Router /diet [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.nutrition.dietsave"

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
	if req.Foods == nil {
		req.Foods = []models.Food{}
	}

	d, err := h.service.SaveDiet(r.Context(), uid, req.Foods)
	if err != nil {
		log.Error("failed to save diet", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save diet"))
		return
	}

	render.JSON(w, r, response.OKWithData(d))
}
