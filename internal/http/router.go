package http

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/stacks/internal/auth"
)

//go:embed templates/*.html
var templatesFS embed.FS

// AfterLoginPath is where a successful login lands.
const AfterLoginPath = "/search"

func parseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	if cfg.RequestLogging {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	authMiddleware := auth.NewMiddleware(cfg.SessionManager)
	router.Use(cfg.SessionManager.SessionLoadSave())
	router.Use(authMiddleware.Handler())

	router.SetHTMLTemplate(parseTemplates())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, pages, AfterLoginPath)
	authController.RegisterRoutes(router)

	catalogController := NewCatalogController(cfg.Catalog)
	router.GET("/", catalogController.Index)

	protected := router.Group("/", authMiddleware.RequireLogin())
	protected.GET("/search", catalogController.Search)
	protected.GET("/book/:id", catalogController.Book)
	protected.GET("/borrow/:id", catalogController.Borrow)
	protected.GET("/borrowed_books", catalogController.BorrowedBooks)

	router.NoRoute(func(c *gin.Context) {
		respondNotFound(c, "Page not found")
	})

	return router
}
