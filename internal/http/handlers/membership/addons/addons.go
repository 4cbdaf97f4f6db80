// Package addons реализует HTTP-обработчик каталога дополнительных услуг.
package addons

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Handler обрабатывает GET /addons.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service отдает каталог дополнительных услуг.
type Service interface {
	Addons() []models.Addon
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Дополнительные услуги
// @Tags Memberships
// @Produce  json
// @Success 200 {object} response.OKResponse "Услуги"
// @Router /addons [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"addons": h.service.Addons(),
	}))
}
