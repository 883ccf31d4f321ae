package repository

import (
	"path/filepath"
	"testing"

	"openboard/internal/database"
	"openboard/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated on-disk SQLite database for one test
// and applies the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, nickname string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Nickname: nickname,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, title string) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:   title,
		Content: "content of " + title,
		UserID:  userID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, userID, postID uint, content string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		Content: content,
		UserID:  userID,
		PostID:  postID,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
