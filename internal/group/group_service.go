package group

import (
	"context"
	"database/sql"
	"strings"

	grouperrors "go-grafik/internal/group/errors"
	"go-grafik/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scoped is a store keyed by group name that must follow renames and deletes.
type Scoped interface {
	RenameGroup(ctx context.Context, oldName, newName string) error
	DeleteByGroup(ctx context.Context, group string) error
}

// Cascade binds a Scoped store to the transaction of a group change.
type Cascade func(tx *sql.Tx) Scoped

// CacheInvalidator drops cached per-group data.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, groups ...string)
}

// Invalidators fans an invalidation out to several caches.
type Invalidators []CacheInvalidator

func (in Invalidators) Invalidate(ctx context.Context, groups ...string) {
	for _, c := range in {
		c.Invalidate(ctx, groups...)
	}
}

//go:generate mockgen -source=group_service.go -destination=mock/group_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateGroupRequest) (GroupResponse, error)
	GetAll(ctx context.Context) ([]GroupResponse, error)
	Get(ctx context.Context, name string) (GroupResponse, error)
	Rename(ctx context.Context, name string, req RenameGroupRequest) (GroupResponse, error)
	Delete(ctx context.Context, name string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	cascades []Cascade
	cache    CacheInvalidator
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, cache CacheInvalidator, cascades []Cascade, logger ...*zap.Logger) Service {
	l := zap.L().Named("group.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("group.service")
	}
	return &service{db: db, repo: repo, cascades: cascades, cache: cache, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateGroupRequest) (GroupResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return GroupResponse{}, grouperrors.ErrGroupNameRequired
	}

	g := &Group{ID: uuid.New(), Name: name}
	if err := s.repo.Create(ctx, g); err != nil {
		logger.Warn("create group failed", zap.String("group", name), zap.Error(err))
		return GroupResponse{}, mapRepositoryError(err)
	}

	logger.Info("group created", zap.String("group", name))
	return mapToResponse(*g), nil
}

func (s *service) GetAll(ctx context.Context) ([]GroupResponse, error) {
	groups, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, mapToResponse(g))
	}
	return resp, nil
}

func (s *service) Get(ctx context.Context, name string) (GroupResponse, error) {
	g, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return GroupResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*g), nil
}

// Rename moves the group and everything keyed by its name in one transaction.
func (s *service) Rename(ctx context.Context, name string, req RenameGroupRequest) (GroupResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	newName := strings.TrimSpace(req.Name)
	if newName == "" {
		return GroupResponse{}, grouperrors.ErrGroupNameRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("rename group begin tx failed", zap.Error(err))
		return GroupResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	g, err := qtx.FindByName(ctx, name)
	if err != nil {
		return GroupResponse{}, mapRepositoryError(err)
	}
	if newName == name {
		return mapToResponse(*g), nil
	}

	if err := qtx.Rename(ctx, g, newName); err != nil {
		return GroupResponse{}, mapRepositoryError(err)
	}
	for _, c := range s.cascades {
		if err := c(tx).RenameGroup(ctx, name, newName); err != nil {
			logger.Error("rename group cascade failed", zap.String("group", name), zap.Error(err))
			return GroupResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return GroupResponse{}, err
	}

	s.invalidate(ctx, name, newName)
	logger.Info("group renamed", zap.String("from", name), zap.String("to", newName))
	return mapToResponse(*g), nil
}

// Delete removes the group together with its rosters, grids and templates.
func (s *service) Delete(ctx context.Context, name string) error {
	logger := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("delete group begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	g, err := qtx.FindByName(ctx, name)
	if err != nil {
		return mapRepositoryError(err)
	}

	for _, c := range s.cascades {
		if err := c(tx).DeleteByGroup(ctx, name); err != nil {
			logger.Error("delete group cascade failed", zap.String("group", name), zap.Error(err))
			return err
		}
	}
	if err := qtx.Delete(ctx, g); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, name)
	logger.Info("group deleted", zap.String("group", name))
	return nil
}

func (s *service) invalidate(ctx context.Context, groups ...string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, groups...)
	}
}

func mapToResponse(g Group) GroupResponse {
	return GroupResponse{
		ID:        g.ID.String(),
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
	}
}
