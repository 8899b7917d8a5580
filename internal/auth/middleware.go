package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeySession is the gin context key holding the request's *SessionData.
const ContextKeySession = "auth_session"

// LoginPath is where anonymous visitors of protected pages are sent.
const LoginPath = "/login"

// Middleware resolves the logged in user of every request.
type Middleware struct {
	sessionManager *SessionManager
}

func NewMiddleware(sessionManager *SessionManager) *Middleware {
	return &Middleware{sessionManager: sessionManager}
}

// Handler copies the session's user into the gin context. Requests without a
// session pass through anonymous.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if data := m.sessionManager.GetSessionData(c.Request); data != nil {
			c.Set(ContextKeySession, data)
		}
		c.Next()
	}
}

// RequireLogin redirects anonymous requests to the login page.
func (m *Middleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the session of the request, or nil when anonymous.
func CurrentUser(c *gin.Context) *SessionData {
	if v, exists := c.Get(ContextKeySession); exists {
		if data, ok := v.(*SessionData); ok {
			return data
		}
	}
	return nil
}

func IsLoggedIn(c *gin.Context) bool {
	return CurrentUser(c) != nil
}
