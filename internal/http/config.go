package http

import (
	"github.com/mrlokans/stacks/internal/auth"
	"github.com/mrlokans/stacks/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog  CatalogStore
	Database *database.Database

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager

	// CSRF protection is off when empty
	CSRFSecret    []byte
	SecureCookies bool

	// Access log on stdout
	RequestLogging bool

	// Application info
	Version string
}
