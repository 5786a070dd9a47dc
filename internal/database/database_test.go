package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"coursehub/internal/config"
	"coursehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig())
	require.NoError(t, err)
	return db
}

func TestConfigurePool(t *testing.T) {
	db := openMemory(t)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestMigrate_CreatesEngagementConstraints(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(db))

	for _, model := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Like{}, "idx_like_user_course"))
	assert.True(t, db.Migrator().HasIndex(&models.Rating{}, "idx_rating_user_course"))

	user := models.User{Email: "a@example.com", Password: "x", Role: models.RoleTeacher}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "Go", Description: "d", Content: "c", TeacherID: user.ID}
	require.NoError(t, db.Create(&course).Error)

	require.NoError(t, db.Create(&models.Like{UserID: user.ID, CourseID: course.ID, Liked: true}).Error)
	err := db.Create(&models.Like{UserID: user.ID, CourseID: course.ID, Liked: true}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = db.Create(&models.Rating{UserID: user.ID, CourseID: course.ID, Value: 6}).Error
	assert.Error(t, err)
}

func TestSchemaStatus(t *testing.T) {
	db := openMemory(t)

	before, err := SchemaStatus(db)
	require.NoError(t, err)
	require.Len(t, before, len(PersistentModels()))
	for _, st := range before {
		assert.False(t, st.Exists, st.Table)
	}

	require.NoError(t, Migrate(db))
	after, err := SchemaStatus(db)
	require.NoError(t, err)
	assert.Equal(t, "users", after[0].Table)
	for _, st := range after {
		assert.True(t, st.Exists, st.Table)
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN(&config.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", dsn)
}

func TestCustomGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()
	fc := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(ctx, time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), fc, errors.New("boom"))
	assert.Contains(t, buf.String(), "GORM query error")

	buf.Reset()
	l.Trace(ctx, time.Now().Add(-time.Second), fc, nil)
	assert.Contains(t, buf.String(), "GORM slow query")

	buf.Reset()
	l.LogMode(logger.Silent).Trace(ctx, time.Now(), fc, errors.New("boom"))
	assert.Empty(t, buf.String())
}
