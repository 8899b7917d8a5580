package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestParseTemplates(t *testing.T) {
	tmpl := parseTemplates()

	for _, name := range []string{"index", "login_page", "search_page", "book_page", "borrowed_books_page", "error", "navbar"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		param  string
		wantID uint
		wantOK bool
	}{
		{"7", 7, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, router := gin.CreateTestContext(w)
			router.SetHTMLTemplate(parseTemplates())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Params = gin.Params{{Key: "id", Value: tt.param}}

			id, ok := parseIDParam(c, "id", "Book")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if !ok {
				assert.Equal(t, http.StatusNotFound, w.Code)
			}
		})
	}
}
