package users

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/stacks/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	dbPath := filepath.Join(t.TempDir(), "users.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func TestRepository_CreateUser(t *testing.T) {
	repo := setupTestDB(t)

	user, err := repo.CreateUser("s1001", "$2a$04$hash")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "s1001", user.StudentID)
	assert.Equal(t, "$2a$04$hash", user.Password)
}

func TestRepository_CreateUser_Duplicate(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.CreateUser("s1001", "one")
	require.NoError(t, err)

	_, err = repo.CreateUser("s1001", "two")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRepository_GetUserByStudentID(t *testing.T) {
	repo := setupTestDB(t)
	created, err := repo.CreateUser("s1001", "hash")
	require.NoError(t, err)

	user, err := repo.GetUserByStudentID("s1001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = repo.GetUserByStudentID("s9999")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_GetUserByID(t *testing.T) {
	repo := setupTestDB(t)
	created, err := repo.CreateUser("s1001", "hash")
	require.NoError(t, err)

	user, err := repo.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "s1001", user.StudentID)

	_, err = repo.GetUserByID(created.ID + 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_SetPassword(t *testing.T) {
	repo := setupTestDB(t)
	_, err := repo.CreateUser("s1001", "old")
	require.NoError(t, err)

	require.NoError(t, repo.SetPassword("s1001", "new"))
	user, err := repo.GetUserByStudentID("s1001")
	require.NoError(t, err)
	assert.Equal(t, "new", user.Password)

	assert.ErrorIs(t, repo.SetPassword("nobody", "x"), ErrUserNotFound)
}
