package addons

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type staticCatalog []models.Addon

func (c staticCatalog) Addons() []models.Addon { return c }

func TestAddonsHandler(t *testing.T) {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), staticCatalog{
		{ID: "personal-training", Name: "Personal Training", Price: 500, Unit: "session"},
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/addons", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"status":"OK","data":{"addons":[{"id":"personal-training","name":"Personal Training","price":500,"unit":"session"}]}}`,
		w.Body.String())
}
