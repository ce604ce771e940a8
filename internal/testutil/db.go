// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"musify/database"
	"musify/internal/microservices/http-api/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory sqlite database with the Musify schema applied.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := database.SQLiteDSN(fmt.Sprintf("file:musify-%s?mode=memory&cache=shared", uuid.NewString()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// one connection keeps the in-memory database alive and serialises transactions
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedUser inserts a user with a placeholder password hash.
func SeedUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@musify.test",
		Password: "$2a$10$placeholderplaceholderplaceholderplaceholderpl",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

// SeedAlbum inserts an album with no reviews.
func SeedAlbum(t testing.TB, db *gorm.DB, title string) *models.Album {
	t.Helper()

	album := &models.Album{
		Title:       title,
		Artist:      "Artist of " + title,
		Description: "Description of " + title,
		ImageURL:    "https://img.musify.test/" + title + ".jpg",
	}
	if err := db.Create(album).Error; err != nil {
		t.Fatalf("seed album %s: %v", title, err)
	}
	return album
}
