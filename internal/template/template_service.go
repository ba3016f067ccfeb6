package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-grafik/internal/shared/contextutil"
	templateerrors "go-grafik/internal/template/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const TemplatesKeyPrefix = "templates:all:"

func GetTemplatesKey(group string) string {
	return TemplatesKeyPrefix + group
}

//go:generate mockgen -source=template_service.go -destination=mock/template_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, group string) ([]TemplateResponse, error)
	Get(ctx context.Context, group, name string) (TemplateResponse, error)
	Upsert(ctx context.Context, group string, req UpsertTemplateRequest) (TemplateResponse, error)
	Update(ctx context.Context, group, name string, req UpdateTemplateRequest) (TemplateResponse, error)
	Delete(ctx context.Context, group, name string) error
	Invalidate(ctx context.Context, groups ...string)
}

type service struct {
	db       *sql.DB
	repo     Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, cacheTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("template.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("template.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Minute
	}
	return &service{
		db:       db,
		repo:     repo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		cacheTTL: cacheTTL,
		logger:   l,
	}
}

func validPositions(positions []string) bool {
	if len(positions) == 0 {
		return false
	}
	for _, p := range positions {
		if strings.TrimSpace(p) == "" {
			return false
		}
	}
	return true
}

func (s *service) List(ctx context.Context, group string) ([]TemplateResponse, error) {
	cacheKey := GetTemplatesKey(group)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []TemplateResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAll(ctx, group)
		if err != nil {
			return nil, err
		}

		resp := make([]TemplateResponse, 0, len(rows))
		for _, t := range rows {
			resp = append(resp, mapToResponse(t))
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, s.cacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]TemplateResponse), nil
}

func (s *service) Get(ctx context.Context, group, name string) (TemplateResponse, error) {
	t, err := s.repo.FindByName(ctx, group, name)
	if err != nil {
		return TemplateResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*t), nil
}

// Upsert creates the template or replaces the positions of the one with the
// same name in the group.
func (s *service) Upsert(ctx context.Context, group string, req UpsertTemplateRequest) (TemplateResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return TemplateResponse{}, templateerrors.ErrTemplateNameRequired
	}
	if !validPositions(req.Positions) {
		return TemplateResponse{}, templateerrors.ErrInvalidPositions
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("upsert template begin tx failed", zap.Error(err))
		return TemplateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t := &Template{
		ID:        uuid.New(),
		GroupName: group,
		Name:      name,
		Positions: req.Positions,
	}
	if err := qtx.Upsert(ctx, t); err != nil {
		logger.Error("upsert template failed", zap.String("group", group), zap.String("template", name), zap.Error(err))
		return TemplateResponse{}, mapRepositoryError(err)
	}

	stored, err := qtx.FindByName(ctx, group, name)
	if err != nil {
		return TemplateResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TemplateResponse{}, err
	}

	s.Invalidate(ctx, group)
	logger.Info("template saved", zap.String("group", group), zap.String("template", name))
	return mapToResponse(*stored), nil
}

func (s *service) Update(ctx context.Context, group, name string, req UpdateTemplateRequest) (TemplateResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("update template begin tx failed", zap.Error(err))
		return TemplateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindByName(ctx, group, name)
	if err != nil {
		return TemplateResponse{}, mapRepositoryError(err)
	}

	newName := t.Name
	if req.Name != nil {
		newName = strings.TrimSpace(*req.Name)
		if newName == "" {
			return TemplateResponse{}, templateerrors.ErrTemplateNameRequired
		}
	}
	if req.Positions != nil {
		if !validPositions(req.Positions) {
			return TemplateResponse{}, templateerrors.ErrInvalidPositions
		}
		t.Positions = req.Positions
	}

	if newName != t.Name {
		_, err := qtx.FindByName(ctx, group, newName)
		switch {
		case err == nil:
			return TemplateResponse{}, templateerrors.ErrTemplateAlreadyExists
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return TemplateResponse{}, err
		}
		t.Name = newName
	}

	if err := qtx.Update(ctx, t); err != nil {
		logger.Error("update template failed", zap.String("group", group), zap.String("template", name), zap.Error(err))
		return TemplateResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TemplateResponse{}, err
	}

	s.Invalidate(ctx, group)
	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, group, name string) error {
	n, err := s.repo.Delete(ctx, group, name)
	if err != nil {
		return err
	}
	if n == 0 {
		return templateerrors.ErrTemplateNotFound
	}

	s.Invalidate(ctx, group)
	contextutil.GetLogger(ctx, s.logger).Info("template deleted", zap.String("group", group), zap.String("template", name))
	return nil
}

func (s *service) Invalidate(ctx context.Context, groups ...string) {
	if s.rdb == nil {
		return
	}
	for _, g := range groups {
		cacheKey := GetTemplatesKey(g)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate template cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}
}

func mapToResponse(t Template) TemplateResponse {
	positions := t.Positions
	if positions == nil {
		positions = []string{}
	}
	return TemplateResponse{
		Group:     t.GroupName,
		Name:      t.Name,
		Positions: positions,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
