package template

import (
	"context"
	"database/sql"
	"time"

	"go-grafik/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=template_repo.go -destination=mock/template_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context, group string) ([]Template, error)
	FindByName(ctx context.Context, group, name string) (*Template, error)
	Upsert(ctx context.Context, t *Template) error
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, group, name string) (int64, error)

	RenameGroup(ctx context.Context, oldName, newName string) error
	DeleteByGroup(ctx context.Context, group string) error
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

func (r *repository) FindAll(ctx context.Context, group string) ([]Template, error) {
	var rows []Template
	err := r.conn(ctx).
		Scopes(tenant.Scope(group)).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByName(ctx context.Context, group, name string) (*Template, error) {
	var t Template
	err := r.conn(ctx).
		Scopes(tenant.Scope(group)).
		Where("name = ?", name).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Upsert replaces the positions of an existing (group, name) template.
func (r *repository) Upsert(ctx context.Context, t *Template) error {
	return r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_name"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"positions", "updated_at"}),
	}).Create(t).Error
}

func (r *repository) Update(ctx context.Context, t *Template) error {
	return r.conn(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, group, name string) (int64, error) {
	res := r.conn(ctx).
		Scopes(tenant.Scope(group)).
		Where("name = ?", name).
		Delete(&Template{})
	return res.RowsAffected, res.Error
}

func (r *repository) RenameGroup(ctx context.Context, oldName, newName string) error {
	return r.conn(ctx).Model(&Template{}).
		Scopes(tenant.Scope(oldName)).
		Updates(map[string]any{
			"group_name": newName,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repository) DeleteByGroup(ctx context.Context, group string) error {
	return r.conn(ctx).
		Scopes(tenant.Scope(group)).
		Delete(&Template{}).Error
}
