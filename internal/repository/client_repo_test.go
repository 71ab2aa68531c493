package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB builds statements without a server so tests can inspect the SQL.
func dryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=studio dbname=studio sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)

	var captured string
	err = db.Callback().Query().After("gorm:query").Register("test:capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	require.NoError(t, err)
	return db, &captured
}

func TestFindByEmailForUpdate_LocksRow(t *testing.T) {
	db, sql := dryRunDB(t)
	repo := NewClientRepository(db)

	_, err := repo.FindByEmailForUpdate(context.Background(), db, "Ana@Example.com")

	require.NoError(t, err)
	assert.Contains(t, *sql, "lower(email) =")
	assert.Contains(t, *sql, "FOR UPDATE")
}

func TestFindByEmail_DoesNotLock(t *testing.T) {
	db, sql := dryRunDB(t)
	repo := NewClientRepository(db)

	_, err := repo.FindByEmail(context.Background(), "ana@example.com")

	require.NoError(t, err)
	assert.Contains(t, *sql, `FROM "clients"`)
	assert.NotContains(t, *sql, "FOR UPDATE")
}
