package roster_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go-grafik/internal/roster"
	rostererrors "go-grafik/internal/roster/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// fakeService overrides only what a test needs; other calls panic.
type fakeService struct {
	roster.Service
	listFn          func(ctx context.Context, group, q string) ([]roster.ProfileResponse, error)
	addFn           func(ctx context.Context, group, name string) (roster.ProfileResponse, error)
	transferFn      func(ctx context.Context, group, name, target string) error
	updateProfileFn func(ctx context.Context, group, name string, req roster.UpdateProfileRequest) (roster.ProfileResponse, error)
	deleteSkillFn   func(ctx context.Context, name string) error
}

func (f *fakeService) List(ctx context.Context, group, q string) ([]roster.ProfileResponse, error) {
	return f.listFn(ctx, group, q)
}
func (f *fakeService) Add(ctx context.Context, group, name string) (roster.ProfileResponse, error) {
	return f.addFn(ctx, group, name)
}
func (f *fakeService) Transfer(ctx context.Context, group, name, target string) error {
	return f.transferFn(ctx, group, name, target)
}
func (f *fakeService) UpdateProfile(ctx context.Context, group, name string, req roster.UpdateProfileRequest) (roster.ProfileResponse, error) {
	return f.updateProfileFn(ctx, group, name, req)
}
func (f *fakeService) DeleteSkill(ctx context.Context, name string) error {
	return f.deleteSkillFn(ctx, name)
}

func newRouter(svc roster.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := roster.NewHandler(svc)
	roster.RegisterRoutes(r.Group("/groups/:group"), h)
	roster.RegisterSkillRoutes(r.Group(""), h)
	return r
}

func doJSON(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_List(t *testing.T) {
	svc := &fakeService{
		listFn: func(ctx context.Context, group, q string) ([]roster.ProfileResponse, error) {
			assert.Equal(t, "Magazyn", group)
			assert.Equal(t, "ad", q)
			return []roster.ProfileResponse{{Name: "Adam", Skills: roster.NewSkillSet()}}, nil
		},
	}

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/groups/Magazyn/employees?q=ad", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Adam"`)
	assert.Contains(t, w.Body.String(), `"exam_days_left":null`)
}

func TestHandler_Add(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeService{
			addFn: func(ctx context.Context, group, name string) (roster.ProfileResponse, error) {
				return roster.ProfileResponse{Name: name, Skills: roster.NewSkillSet()}, nil
			},
		}
		w := doJSON(newRouter(svc), http.MethodPost, "/groups/Magazyn/employees", `{"name":"Ewa"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		w := doJSON(newRouter(&fakeService{}), http.MethodPost, "/groups/Magazyn/employees", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Name is required")
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeService{
			addFn: func(ctx context.Context, group, name string) (roster.ProfileResponse, error) {
				return roster.ProfileResponse{}, rostererrors.ErrEmployeeAlreadyExists
			},
		}
		w := doJSON(newRouter(svc), http.MethodPost, "/groups/Magazyn/employees", `{"name":"Ewa"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})
}

func TestHandler_Transfer(t *testing.T) {
	svc := &fakeService{
		transferFn: func(ctx context.Context, group, name, target string) error {
			assert.Equal(t, "Adam Nowak", name)
			assert.Equal(t, "Biuro", target)
			return nil
		},
	}

	target := "/groups/Magazyn/employees/" + url.PathEscape("Adam Nowak") + "/transfer"
	w := doJSON(newRouter(svc), http.MethodPost, target, `{"target_group":"Biuro"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_UpdateProfile_InvalidEmail(t *testing.T) {
	svc := &fakeService{
		updateProfileFn: func(ctx context.Context, group, name string, req roster.UpdateProfileRequest) (roster.ProfileResponse, error) {
			return roster.ProfileResponse{}, rostererrors.ErrInvalidEmail
		},
	}

	w := doJSON(newRouter(svc), http.MethodPut, "/groups/Magazyn/employees/Adam/profile", `{"name":"Adam","email":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email format")
}

func TestHandler_DeleteSkill(t *testing.T) {
	svc := &fakeService{
		deleteSkillFn: func(ctx context.Context, name string) error {
			if name == "Wózek" {
				return nil
			}
			return rostererrors.ErrSkillNotFound
		},
	}

	r := newRouter(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/skills/"+url.PathEscape("Wózek"), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/skills/Dzwig", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
