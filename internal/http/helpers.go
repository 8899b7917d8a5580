package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/stacks/internal/auth"
)

// Pages renders the embedded page templates. Every page receives LoggedIn
// for the navbar and CSRFField for its forms.
type Pages struct{}

func (Pages) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["LoggedIn"] = auth.IsLoggedIn(c)
	data["CSRFField"] = auth.CSRFTokenField(c)
	c.HTML(status, name, data)
}

var pages Pages

// respondNotFound renders the error page with a 404 status.
func respondNotFound(c *gin.Context, message string) {
	pages.Render(c, http.StatusNotFound, "error", gin.H{"Message": message})
}

// respondInternalError logs the error and renders a generic error page.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	pages.Render(c, http.StatusInternalServerError, "error", gin.H{"Message": "Something went wrong"})
}

// parseIDParam extracts an unsigned integer ID from URL parameters. Anything
// else is reported as not found, like an unmatched route.
func parseIDParam(c *gin.Context, paramName, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil {
		respondNotFound(c, resource+" not found")
		return 0, false
	}
	return uint(id), true
}
