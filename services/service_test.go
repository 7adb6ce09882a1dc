package services

import (
	"context"
	"testing"

	"codezest/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.ProgrammingLanguage{},
		&models.Module{},
		&models.Material{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.QuizAttempt{},
	))

	return db
}

func seedLanguage(t *testing.T, db *gorm.DB) *models.ProgrammingLanguage {
	t.Helper()

	lang := models.ProgrammingLanguage{Name: "Go", Slug: "go", IsActive: true}
	require.NoError(t, db.Create(&lang).Error)
	return &lang
}

func seedModule(t *testing.T, db *gorm.DB) *models.Module {
	t.Helper()

	lang := seedLanguage(t, db)
	module := models.Module{
		LanguageID: lang.ID,
		Title:      "Arrays and Slices",
		Slug:       "arrays-and-slices",
		Order:      1,
	}
	require.NoError(t, db.Create(&module).Error)
	return &module
}

func intPtr(v int) *int {
	return &v
}

var testCtx = context.Background()
