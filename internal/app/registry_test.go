package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-grafik/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gormDB.AutoMigrate(Entities()...))

	cfg := &config.Config{
		Settings: config.SettingsConfig{RateLimitRPS: 1000, RateLimitBurst: 1000},
		Notify:   config.NotifyConfig{To: "kierownik@firma.pl"},
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerModules(r, cfg, sqlDB, gormDB, nil, zap.NewNop())
	return r
}

func call(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterModules_EndToEnd(t *testing.T) {
	r := newTestRouter(t)

	w := call(r, http.MethodPost, "/api/v1/groups", `{"name":"Magazyn"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(r, http.MethodGet, "/api/v1/groups/Biuro/employees", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodPost, "/api/v1/groups/Magazyn/employees", `{"name":"Anna"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(r, http.MethodPost, "/api/v1/groups/Magazyn/attendance/cell",
		`{"month":"Maj","year":"2025","user_name":"Anna","day":"5","value":"1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodGet, "/api/v1/groups/Magazyn/attendance?month=5&year=2025", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Anna")

	w = call(r, http.MethodGet, "/api/v1/groups/Magazyn/reports/cards?month=Maj&year=2025", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = call(r, http.MethodPost, "/api/v1/groups/Magazyn/templates", `{"name":"Rano","positions":["Kasa"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// only the configured address is usable: Anna has no e-mail yet
	w = call(r, http.MethodPost, "/api/v1/groups/Magazyn/notify-email", `{}`)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "kierownik@firma.pl")

	w = call(r, http.MethodPut, "/api/v1/groups/Magazyn", `{"name":"Hala"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodGet, "/api/v1/groups/Hala/templates/Rano", "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = call(r, http.MethodGet, "/api/v1/groups/Hala/employees", "")
	assert.Contains(t, w.Body.String(), "Anna")
}

func TestRegisterModules_TransferToUnknownGroup(t *testing.T) {
	r := newTestRouter(t)

	w := call(r, http.MethodPost, "/api/v1/groups", `{"name":"Magazyn"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = call(r, http.MethodPost, "/api/v1/groups/Magazyn/employees", `{"name":"Anna"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(r, http.MethodPost, "/api/v1/groups/Magazyn/employees/Anna/transfer", `{"target_group":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = call(r, http.MethodGet, "/api/v1/groups/Magazyn/employees", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Anna")

	// creating the group later must not surface a half-moved employee
	w = call(r, http.MethodPost, "/api/v1/groups", `{"name":"Ghost"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = call(r, http.MethodGet, "/api/v1/groups/Ghost/employees", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Anna")

	w = call(r, http.MethodPost, "/api/v1/groups/Magazyn/employees/Anna/transfer", `{"target_group":"Ghost"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = call(r, http.MethodGet, "/api/v1/groups/Ghost/employees", "")
	assert.Contains(t, w.Body.String(), "Anna")
}
