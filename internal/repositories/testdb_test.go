package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
// One open connection keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Country{},
		&models.City{},
		&models.User{},
		&models.Friendship{},
		&models.Post{},
		&models.PostMedia{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.ForgotPassword{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, first, email string) *models.User {
	t.Helper()
	u := &models.User{FirstName: first, LastName: "Doe", Email: email, Role: models.RoleUser}
	require.NoError(t, NewPostgresUserRepository(db).CreateUser(context.Background(), u))
	return u
}
