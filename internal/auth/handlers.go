package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoginFailedMessage is shown on the login page after a rejected attempt.
const LoginFailedMessage = "Błędny użytkownik lub hasło"

// Renderer renders a named page template. The web layer adds the navbar and
// CSRF data.
type Renderer interface {
	Render(c *gin.Context, status int, name string, data gin.H)
}

// AuthController handles authentication-related HTTP endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	renderer       Renderer
	afterLogin     string
}

// NewAuthController creates a controller that sends users to afterLogin once
// they sign in.
func NewAuthController(service *Service, sessionManager *SessionManager, renderer Renderer, afterLogin string) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		renderer:       renderer,
		afterLogin:     afterLogin,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router gin.IRouter) {
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/logout", ac.Logout)
	router.POST("/logout", ac.Logout)
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	ac.renderer.Render(c, http.StatusOK, "login_page", gin.H{
		"Error":     "",
		"StudentID": "",
	})
}

// Login handles the login form submission.
func (ac *AuthController) Login(c *gin.Context) {
	studentID := c.PostForm("student_id")
	password := c.PostForm("password")

	user, err := ac.service.Authenticate(studentID, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			log.Printf("Login failed for %q: %v", studentID, err)
		}
		ac.renderer.Render(c, http.StatusOK, "login_page", gin.H{
			"Error":     LoginFailedMessage,
			"StudentID": studentID,
		})
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("Failed to create session for user %d: %v", user.ID, err)
		ac.renderer.Render(c, http.StatusInternalServerError, "login_page", gin.H{
			"Error":     "Failed to create session",
			"StudentID": studentID,
		})
		return
	}

	c.Redirect(http.StatusFound, ac.afterLogin)
}

// Logout destroys the session and redirects to login.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}
	c.Redirect(http.StatusFound, LoginPath)
}
