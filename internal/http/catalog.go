package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/stacks/internal/auth"
	"github.com/mrlokans/stacks/internal/database/catalog"
)

type CatalogController struct {
	store CatalogStore
}

func NewCatalogController(store CatalogStore) *CatalogController {
	return &CatalogController{store: store}
}

func (controller *CatalogController) Index(c *gin.Context) {
	pages.Render(c, http.StatusOK, "index", nil)
}

// Search lists books whose title contains search_term, or all books.
func (controller *CatalogController) Search(c *gin.Context) {
	term := c.Query("search_term")

	books, err := controller.store.SearchBooks(term)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}

	pages.Render(c, http.StatusOK, "search_page", gin.H{
		"Books":      catalog.NewBookViews(books),
		"SearchTerm": term,
	})
}

func (controller *CatalogController) Book(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Book")
	if !ok {
		return
	}

	book, err := controller.store.GetBook(id)
	if errors.Is(err, catalog.ErrBookNotFound) {
		respondNotFound(c, "Book not found")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}

	pages.Render(c, http.StatusOK, "book_page", gin.H{
		"Book": catalog.NewBookView(*book),
	})
}

// Borrow records a loan for the logged in user and shows their list.
func (controller *CatalogController) Borrow(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Book")
	if !ok {
		return
	}

	if _, err := controller.store.GetBook(id); err != nil {
		if errors.Is(err, catalog.ErrBookNotFound) {
			respondNotFound(c, "Book not found")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	if _, err := controller.store.BorrowBook(auth.CurrentUser(c).UserID, id); err != nil {
		respondInternalError(c, err, "borrow book")
		return
	}

	c.Redirect(http.StatusFound, "/borrowed_books")
}

func (controller *CatalogController) BorrowedBooks(c *gin.Context) {
	books, err := controller.store.ListBorrowedBooks(auth.CurrentUser(c).UserID)
	if err != nil {
		respondInternalError(c, err, "list borrowed books")
		return
	}

	pages.Render(c, http.StatusOK, "borrowed_books_page", gin.H{
		"Books": books,
	})
}
