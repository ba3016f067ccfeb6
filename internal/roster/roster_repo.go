package roster

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-grafik/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=roster_repo.go -destination=mock/roster_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Find(ctx context.Context, group string) (*Document, error)
	Upsert(ctx context.Context, d *Document) error
	ListDocuments(ctx context.Context) ([]Document, error)
	RenameGroup(ctx context.Context, oldName, newName string) error
	DeleteByGroup(ctx context.Context, group string) error

	ListSkills(ctx context.Context) ([]Skill, error)
	CreateSkill(ctx context.Context, s *Skill) error
	DeleteSkill(ctx context.Context, name string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Find(ctx context.Context, group string) (*Document, error) {
	var d Document
	err := r.conn(ctx).Scopes(tenant.Scope(group)).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Upsert(ctx context.Context, d *Document) error {
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	return r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(d).Error
}

func (r *repository) ListDocuments(ctx context.Context) ([]Document, error) {
	var rows []Document
	err := r.conn(ctx).Order("group_name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) RenameGroup(ctx context.Context, oldName, newName string) error {
	return r.conn(ctx).Model(&Document{}).
		Scopes(tenant.Scope(oldName)).
		Updates(map[string]any{
			"group_name": newName,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repository) DeleteByGroup(ctx context.Context, group string) error {
	return r.conn(ctx).
		Scopes(tenant.Scope(group)).
		Delete(&Document{}).Error
}

func (r *repository) ListSkills(ctx context.Context) ([]Skill, error) {
	var rows []Skill
	err := r.conn(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) CreateSkill(ctx context.Context, s *Skill) error {
	s.NameKey = skillKey(s.Name)
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return r.conn(ctx).Create(s).Error
}

// DeleteSkill removes the catalog entry matching name case-insensitively and
// reports how many rows went away.
func (r *repository) DeleteSkill(ctx context.Context, name string) (int64, error) {
	res := r.conn(ctx).
		Where("name_key = ?", skillKey(name)).
		Delete(&Skill{})
	return res.RowsAffected, res.Error
}

func skillKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
