package group_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-grafik/internal/attendance"
	"go-grafik/internal/group"
	grouperrors "go-grafik/internal/group/errors"
	"go-grafik/internal/roster"
	"go-grafik/internal/template"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&group.Group{}, &roster.Document{}, &attendance.Document{}, &template.Template{}))
	return db
}

func TestGroupService_SQLite_Cascade(t *testing.T) {
	db := newSQLiteDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	ctx := context.Background()

	rosterRepo := roster.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	templateRepo := template.NewRepository(db)
	cascades := []group.Cascade{
		func(tx *sql.Tx) group.Scoped { return rosterRepo.WithTx(tx) },
		func(tx *sql.Tx) group.Scoped { return attendanceRepo.WithTx(tx) },
		func(tx *sql.Tx) group.Scoped { return templateRepo.WithTx(tx) },
	}
	svc := group.NewService(sqlDB, group.NewRepository(db), nil, cascades)

	_, err = svc.Create(ctx, group.CreateGroupRequest{Name: "Magazyn"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, group.CreateGroupRequest{Name: "Biuro"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, group.CreateGroupRequest{Name: "Magazyn"})
	assert.ErrorIs(t, err, grouperrors.ErrGroupAlreadyExists)

	require.NoError(t, rosterRepo.Upsert(ctx, &roster.Document{GroupName: "Magazyn", Payload: `[]`}))
	require.NoError(t, attendanceRepo.Upsert(ctx, &attendance.Document{
		GroupName: "Magazyn", Month: "Maj", Year: "2025",
		Payload: `{"group":"Magazyn","month":"Maj","year":"2025","data":{}}`,
	}))
	require.NoError(t, templateRepo.Upsert(ctx, &template.Template{
		ID: uuid.New(), GroupName: "Magazyn", Name: "Rano", Positions: []string{"Kasa"},
	}))

	_, err = svc.Rename(ctx, "Magazyn", group.RenameGroupRequest{Name: "Biuro"})
	assert.ErrorIs(t, err, grouperrors.ErrGroupAlreadyExists)

	resp, err := svc.Rename(ctx, "Magazyn", group.RenameGroupRequest{Name: "Logistyka"})
	require.NoError(t, err)
	assert.Equal(t, "Logistyka", resp.Name)

	_, err = rosterRepo.Find(ctx, "Logistyka")
	require.NoError(t, err)
	doc, err := attendanceRepo.Find(ctx, "Logistyka", "Maj", "2025")
	require.NoError(t, err)
	assert.Contains(t, doc.Payload, `"group":"Logistyka"`)
	_, err = templateRepo.FindByName(ctx, "Logistyka", "Rano")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "Logistyka"))
	_, err = rosterRepo.Find(ctx, "Logistyka")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	rows, err := attendanceRepo.ListByGroup(ctx, "Logistyka")
	require.NoError(t, err)
	assert.Empty(t, rows)
	templates, err := templateRepo.FindAll(ctx, "Logistyka")
	require.NoError(t, err)
	assert.Empty(t, templates)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Biuro", all[0].Name)

	_, err = svc.Get(ctx, "Logistyka")
	assert.ErrorIs(t, err, grouperrors.ErrGroupNotFound)

	repo := group.NewRepository(db)
	ok, err := repo.Exists(ctx, "Biuro")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Exists(ctx, "Logistyka")
	require.NoError(t, err)
	assert.False(t, ok)
}
