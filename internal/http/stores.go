package http

import (
	"github.com/mrlokans/stacks/internal/database/catalog"
	"github.com/mrlokans/stacks/internal/entities"
)

// CatalogStore provides book lookup and borrowing for the catalog pages.
type CatalogStore interface {
	SearchBooks(term string) ([]entities.Book, error)
	GetBook(id uint) (*entities.Book, error)
	BorrowBook(userID, bookID uint) (*entities.BorrowRecord, error)
	ListBorrowedBooks(userID uint) ([]catalog.BorrowedBookView, error)
}
