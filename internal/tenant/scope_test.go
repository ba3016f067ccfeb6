package tenant_test

import (
	"testing"

	"go-grafik/internal/tenant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type row struct {
	ID        uint
	GroupName string
}

func TestScope(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard, DryRun: true})
	require.NoError(t, err)

	var rows []row
	stmt := db.Scopes(tenant.Scope("Magazyn")).Find(&rows).Statement

	assert.Contains(t, stmt.SQL.String(), "group_name = ?")
	assert.Equal(t, []interface{}{"Magazyn"}, stmt.Vars)
}
