package group

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=group_repo.go -destination=mock/group_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, g *Group) error
	FindAll(ctx context.Context) ([]Group, error)
	FindByName(ctx context.Context, name string) (*Group, error)
	Exists(ctx context.Context, name string) (bool, error)
	Rename(ctx context.Context, g *Group, newName string) error
	Delete(ctx context.Context, g *Group) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, g *Group) error {
	return r.conn(ctx).Create(g).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Group, error) {
	var groups []Group
	err := r.conn(ctx).Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*Group, error) {
	var g Group
	err := r.conn(ctx).Where("name = ?", name).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) Exists(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.conn(ctx).Model(&Group{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

func (r *repository) Rename(ctx context.Context, g *Group, newName string) error {
	err := r.conn(ctx).Model(&Group{}).
		Where("id = ?", g.ID).
		Updates(map[string]any{"name": newName, "updated_at": time.Now().UTC()}).Error
	if err != nil {
		return err
	}
	g.Name = newName
	return nil
}

func (r *repository) Delete(ctx context.Context, g *Group) error {
	return r.conn(ctx).Where("id = ?", g.ID).Delete(&Group{}).Error
}
