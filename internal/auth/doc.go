// Package auth provides login, sessions and request protection for the
// catalog web app.
//
// Accounts are identified by student id and hold a bcrypt hash. A successful
// login stores the user id in a server-side session (scs, persisted in the
// catalog database); every request reads it back into a request-scoped
// SessionData instead of any process-wide state.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex>      # CSRF key, auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h      # Session duration
//	AUTH_BCRYPT_COST=12            # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true       # HTTPS-only cookies
//	AUTH_CSRF_ENABLED=true         # Protect form posts
//
// # Usage
//
//	service := auth.NewService(users.NewRepository(db), cfg.Auth)
//	sessions, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	mw := auth.NewMiddleware(sessions)
//	router.Use(sessions.SessionLoadSave(), mw.Handler())
//	router.GET("/search", mw.RequireLogin(), handler)
//
// Read the current user in handlers:
//
//	if s := auth.CurrentUser(c); s != nil { ... s.UserID ... }
package auth
