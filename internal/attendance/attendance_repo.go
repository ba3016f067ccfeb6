package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-grafik/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Find(ctx context.Context, group, month, year string) (*Document, error)
	Upsert(ctx context.Context, d *Document) error
	ListByGroup(ctx context.Context, group string) ([]Document, error)
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
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Find(ctx context.Context, group, month, year string) (*Document, error) {
	var d Document
	err := r.conn(ctx).
		Scopes(tenant.Scope(group)).
		Where("month = ? AND year = ?", month, year).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Upsert replaces the payload of an existing (group, month, year) row.
func (r *repository) Upsert(ctx context.Context, d *Document) error {
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	return r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_name"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(d).Error
}

func (r *repository) ListByGroup(ctx context.Context, group string) ([]Document, error) {
	var rows []Document
	err := r.conn(ctx).
		Scopes(tenant.Scope(group)).
		Order("year ASC, month ASC").
		Find(&rows).Error
	return rows, err
}

// RenameGroup moves documents and rewrites the group field inside each payload.
func (r *repository) RenameGroup(ctx context.Context, oldName, newName string) error {
	rows, err := r.ListByGroup(ctx, oldName)
	if err != nil {
		return err
	}

	for _, row := range rows {
		payload := row.Payload
		if doc, err := DecodeDocument([]byte(row.Payload)); err == nil {
			doc.Group = newName
			if b, err := EncodeDocument(doc); err == nil {
				payload = string(b)
			}
		}

		err := r.conn(ctx).Model(&Document{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{
				"group_name": newName,
				"payload":    payload,
				"updated_at": time.Now().UTC(),
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) DeleteByGroup(ctx context.Context, group string) error {
	return r.conn(ctx).
		Scopes(tenant.Scope(group)).
		Delete(&Document{}).Error
}
