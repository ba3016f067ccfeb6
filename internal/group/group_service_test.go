package group_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-grafik/internal/group"
	grouperrors "go-grafik/internal/group/errors"
	groupMock "go-grafik/internal/group/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type scopedSpy struct {
	renamed [][2]string
	deleted []string
	err     error
}

func (s *scopedSpy) RenameGroup(_ context.Context, oldName, newName string) error {
	s.renamed = append(s.renamed, [2]string{oldName, newName})
	return s.err
}

func (s *scopedSpy) DeleteByGroup(_ context.Context, g string) error {
	s.deleted = append(s.deleted, g)
	return s.err
}

type cacheSpy struct {
	groups []string
}

func (c *cacheSpy) Invalidate(_ context.Context, groups ...string) {
	c.groups = append(c.groups, groups...)
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *groupMock.MockRepository
	scoped  *scopedSpy
	cache   *cacheSpy
	service group.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	t.Cleanup(func() { _ = db.Close() })

	repo := groupMock.NewMockRepository(ctrl)
	scoped := &scopedSpy{}
	cache := &cacheSpy{}
	cascades := []group.Cascade{func(*sql.Tx) group.Scoped { return scoped }}

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		scoped:  scoped,
		cache:   cache,
		service: group.NewService(db, repo, cache, cascades),
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestGroupService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("trims name", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, g *group.Group) error {
			assert.Equal(t, "Magazyn", g.Name)
			assert.NotEqual(t, uuid.Nil, g.ID)
			return nil
		})

		resp, err := deps.service.Create(ctx, group.CreateGroupRequest{Name: " Magazyn "})
		require.NoError(t, err)
		assert.Equal(t, "Magazyn", resp.Name)
	})

	t.Run("duplicate", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(errors.New(`ERROR: duplicate key value violates unique constraint "uq_group_name"`))

		_, err := deps.service.Create(ctx, group.CreateGroupRequest{Name: "Magazyn"})
		assert.ErrorIs(t, err, grouperrors.ErrGroupAlreadyExists)
	})

	t.Run("blank", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, group.CreateGroupRequest{Name: "  "})
		assert.ErrorIs(t, err, grouperrors.ErrGroupNameRequired)
	})
}

func TestGroupService_Rename(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades and invalidates", func(t *testing.T) {
		deps := setupServiceTest(t)
		g := &group.Group{ID: uuid.New(), Name: "Stary"}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByName(ctx, "Stary").Return(g, nil)
		deps.repo.EXPECT().Rename(ctx, g, "Nowy").DoAndReturn(func(_ context.Context, g *group.Group, n string) error {
			g.Name = n
			return nil
		})

		resp, err := deps.service.Rename(ctx, "Stary", group.RenameGroupRequest{Name: "Nowy"})
		require.NoError(t, err)
		assert.Equal(t, "Nowy", resp.Name)
		assert.Equal(t, [][2]string{{"Stary", "Nowy"}}, deps.scoped.renamed)
		assert.Equal(t, []string{"Stary", "Nowy"}, deps.cache.groups)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("cascade failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.scoped.err = errors.New("boom")
		g := &group.Group{ID: uuid.New(), Name: "Stary"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByName(ctx, "Stary").Return(g, nil)
		deps.repo.EXPECT().Rename(ctx, g, "Nowy").Return(nil)

		_, err := deps.service.Rename(ctx, "Stary", group.RenameGroupRequest{Name: "Nowy"})
		assert.Error(t, err)
		assert.Empty(t, deps.cache.groups)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown group", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByName(ctx, "Brak").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Rename(ctx, "Brak", group.RenameGroupRequest{Name: "Nowy"})
		assert.ErrorIs(t, err, grouperrors.ErrGroupNotFound)
	})
}

func TestGroupService_Delete(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	g := &group.Group{ID: uuid.New(), Name: "Magazyn"}

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByName(ctx, "Magazyn").Return(g, nil)
	deps.repo.EXPECT().Delete(ctx, g).Return(nil)

	require.NoError(t, deps.service.Delete(ctx, "Magazyn"))
	assert.Equal(t, []string{"Magazyn"}, deps.scoped.deleted)
	assert.Equal(t, []string{"Magazyn"}, deps.cache.groups)
}

func TestInvalidators(t *testing.T) {
	a, b := &cacheSpy{}, &cacheSpy{}
	group.Invalidators{a, b}.Invalidate(context.Background(), "Stary", "Nowy")

	assert.Equal(t, []string{"Stary", "Nowy"}, a.groups)
	assert.Equal(t, []string{"Stary", "Nowy"}, b.groups)
}
