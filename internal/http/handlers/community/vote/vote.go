// Package vote реализует HTTP-обработчик голосования за вопрос.
//
// Пользователь может поставить вопросу только один голос. Повторный голос
// того же вида ничего не меняет, противоположный заменяет прежний.
package vote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/services/community"
)

// Handler обрабатывает POST /questions/{id}/{vote}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает голосование.
type Service interface {
	Vote(ctx context.Context, questionID, userUID, vote string) (*models.Question, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Проголосовать за вопрос
// @Tags Community
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID вопроса"
// @Param vote path string true "like или dislike"
// @Success 200 {object} response.OKResponse "Вопрос с голосами"
// @Failure 400 {object} response.ErrorResponse "Неизвестный голос"
// @Failure 404 {object} response.ErrorResponse "Вопрос не найден"
// @Router /questions/{id}/{vote} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.community.vote"

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
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	q, err := h.service.Vote(r.Context(), id, uid, chi.URLParam(r, "vote"))
	switch {
	case errors.Is(err, community.ErrInvalidVote):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("vote must be like or dislike"))
		return
	case errors.Is(err, community.ErrQuestionNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("question not found"))
		return
	case err != nil:
		log.Error("failed to vote", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to vote"))
		return
	}

	render.JSON(w, r, response.OKWithData(q))
}
