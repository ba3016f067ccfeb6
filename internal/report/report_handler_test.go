package report_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-grafik/internal/report"
	reporterrors "go-grafik/internal/report/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	gridFn  func(ctx context.Context, group, month, year string) ([]byte, string, error)
	cardsFn func(ctx context.Context, group, month, year string) ([]byte, string, error)
}

func (f *fakeService) Grid(ctx context.Context, group, month, year string) ([]byte, string, error) {
	return f.gridFn(ctx, group, month, year)
}
func (f *fakeService) Cards(ctx context.Context, group, month, year string) ([]byte, string, error) {
	return f.cardsFn(ctx, group, month, year)
}

func newRouter(svc report.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	report.RegisterRoutes(r.Group("/groups/:group"), report.NewHandler(svc))
	return r
}

func TestHandler_Grid(t *testing.T) {
	svc := &fakeService{
		gridFn: func(ctx context.Context, group, month, year string) ([]byte, string, error) {
			assert.Equal(t, "Magazyn", group)
			assert.Equal(t, "Maj", month)
			assert.Equal(t, "2025", year)
			return []byte("%PDF-1.3"), "grafik_Magazyn_Maj_2025.pdf", nil
		},
	}

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/groups/Magazyn/reports/grid?month=Maj&year=2025", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "grafik_Magazyn_Maj_2025.pdf")
	assert.Equal(t, "%PDF-1.3", w.Body.String())
}

func TestHandler_Cards(t *testing.T) {
	t.Run("missing year", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(&fakeService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/groups/Magazyn/reports/cards?month=Maj", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no employees", func(t *testing.T) {
		svc := &fakeService{
			cardsFn: func(ctx context.Context, group, month, year string) ([]byte, string, error) {
				return nil, "", reporterrors.ErrNoEmployees
			},
		}
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/groups/Magazyn/reports/cards?month=Maj&year=2025", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})
}
