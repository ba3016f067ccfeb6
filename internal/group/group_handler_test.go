package group_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-grafik/internal/group"
	grouperrors "go-grafik/internal/group/errors"
	"go-grafik/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	group.Service
	createFn func(ctx context.Context, req group.CreateGroupRequest) (group.GroupResponse, error)
	getFn    func(ctx context.Context, name string) (group.GroupResponse, error)
}

func (f *fakeService) Create(ctx context.Context, req group.CreateGroupRequest) (group.GroupResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeService) Get(ctx context.Context, name string) (group.GroupResponse, error) {
	return f.getFn(ctx, name)
}

func TestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		createFn: func(ctx context.Context, req group.CreateGroupRequest) (group.GroupResponse, error) {
			if req.Name == "Magazyn" {
				return group.GroupResponse{}, grouperrors.ErrGroupAlreadyExists
			}
			return group.GroupResponse{Name: req.Name}, nil
		},
	}
	r := gin.New()
	group.RegisterRoutes(r.Group(""), group.NewHandler(svc))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/groups", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, post(`{"name":"Biuro"}`).Code)
	assert.Equal(t, http.StatusConflict, post(`{"name":"Magazyn"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{}`).Code)
}

func TestHandler_RequireGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		getFn: func(ctx context.Context, name string) (group.GroupResponse, error) {
			if name == "Magazyn" {
				return group.GroupResponse{Name: name}, nil
			}
			return group.GroupResponse{}, grouperrors.ErrGroupNotFound
		},
	}
	h := group.NewHandler(svc)

	r := gin.New()
	scoped := r.Group("/groups/:group", h.RequireGroup())
	scoped.GET("/ping", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/groups/Magazyn/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/groups/Brak/ping", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Group not found")
}
