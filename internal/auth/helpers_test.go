package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/stacks/internal/config"
	"github.com/mrlokans/stacks/internal/database/users"
	"github.com/mrlokans/stacks/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAuthConfig() config.Auth {
	return config.Auth{
		SessionLifetime: 24 * time.Hour,
		BcryptCost:      bcrypt.MinCost,
		SecureCookies:   false,
	}
}

// setupAuth returns a service and session manager over a fresh catalog
// database file.
func setupAuth(t *testing.T) (*Service, *SessionManager) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get SQL DB: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	sm, err := NewSessionManager(sqlDB, testAuthConfig())
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	return NewService(users.NewRepository(db), testAuthConfig()), sm
}

// fakeRenderer records the last rendered page.
type fakeRenderer struct {
	name string
	data gin.H
}

func (f *fakeRenderer) Render(c *gin.Context, status int, name string, data gin.H) {
	f.name = name
	f.data = data
	c.String(status, "page:%s", name)
}
