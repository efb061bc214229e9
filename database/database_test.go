package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-verde/storefront-api/config"
	"github.com/tienda-verde/storefront-api/models"
)

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(&config.Config{
		DBHost:     "db",
		DBUser:     "shop",
		DBPassword: "secret",
		DBName:     "retail",
	})

	assert.Contains(t, dsn, "shop:secret@tcp(db:3306)/retail")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestOpenSQLiteMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")
	db, err := Open(&config.Config{DBDriver: "sqlite", SQLitePath: path})
	require.NoError(t, err)

	for _, table := range []any{&models.Order{}, &models.Sale{}, &models.StockMovement{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
}
