// Package questionlist реализует HTTP-обработчик ленты вопросов сообщества.
package questionlist

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

// Handler обрабатывает GET /questions.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение вопросов.
type Service interface {
	ListQuestions(ctx context.Context) ([]*models.Question, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Вопросы сообщества
// @Tags Community
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.OKResponse "Вопросы, новые первыми"
// @Router /questions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.community.questionlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.ListQuestions(r.Context())
	if err != nil {
		log.Error("failed to list questions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list questions"))
		return
	}
	if list == nil {
		list = []*models.Question{}
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"questions": list,
	}))
}
