package repository

import (
	"testing"

	"coursehub/internal/database"
	"coursehub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// setupSQLiteDB returns a migrated in-memory database pinned to one connection.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedCourse(t *testing.T, db *gorm.DB) (*models.User, *models.Course) {
	t.Helper()
	teacher := &models.User{Email: "teacher@example.com", Password: "hash", Role: models.RoleTeacher}
	require.NoError(t, db.Create(teacher).Error)
	course := &models.Course{Title: "Intro to Go", Description: "Basics", Content: "Lesson one", TeacherID: teacher.ID}
	require.NoError(t, db.Create(course).Error)
	return teacher, course
}
