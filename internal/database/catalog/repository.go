// Package catalog provides database operations for books and borrow records.
//
// # Usage
//
//	repo := catalog.NewRepository(db, 7)
//	books, err := repo.SearchBooks("dune")
//	record, err := repo.BorrowBook(userID, books[0].ID)
package catalog

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/stacks/internal/entities"
)

var ErrBookNotFound = errors.New("book not found")

// Repository handles all book and borrow database operations.
type Repository struct {
	db       *gorm.DB
	loanDays int
	now      func() time.Time
}

// NewRepository creates a catalog repository. Borrowed books are due
// loanDays after the day they were taken.
func NewRepository(db *gorm.DB, loanDays int) *Repository {
	return &Repository{db: db, loanDays: loanDays, now: time.Now}
}

// SearchBooks returns books whose title contains term. Case is ignored for
// ASCII letters only, as with SQLite LIKE.
// An empty term returns every book.
func (r *Repository) SearchBooks(term string) ([]entities.Book, error) {
	var books []entities.Book
	query := r.db.Order("book_id ASC")
	if term != "" {
		query = query.Where("title LIKE ?", "%"+term+"%")
	}
	if err := query.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

// GetBook retrieves a book by ID.
func (r *Repository) GetBook(id uint) (*entities.Book, error) {
	var book entities.Book
	result := r.db.Where("book_id = ?", id).Limit(1).Find(&book)
	if result.Error != nil {
		return nil, fmt.Errorf("get book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrBookNotFound
	}
	return &book, nil
}

// CreateBook inserts a book.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Create(book).Error
}

// BorrowBook records that a user took a book today. Stock is not checked and
// the same user may borrow the same book repeatedly.
func (r *Repository) BorrowBook(userID, bookID uint) (*entities.BorrowRecord, error) {
	today := r.now().UTC()
	record := &entities.BorrowRecord{
		UserID:       userID,
		BookID:       bookID,
		DateBorrowed: entities.Today(today),
		DateOfReturn: entities.Today(today.AddDate(0, 0, r.loanDays)),
	}
	if err := r.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("borrow book: %w", err)
	}
	return record, nil
}

// ListBorrowedBooks lists every borrow of a user joined with the book.
func (r *Repository) ListBorrowedBooks(userID uint) ([]BorrowedBookView, error) {
	var rows []BorrowedBookView
	err := r.db.Table("Borrowed_Books").
		Select("Books.book_img AS image, Books.title AS title, Books.book_id AS id, Borrowed_Books.date_of_return AS date_of_return").
		Joins("INNER JOIN Books ON Borrowed_Books.book_id = Books.book_id").
		Where("Borrowed_Books.user_id = ?", userID).
		Order("Borrowed_Books.borrow_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list borrowed books: %w", err)
	}
	return rows, nil
}

// OverdueBorrow is a borrow record whose due date has passed.
type OverdueBorrow struct {
	BorrowID     uint
	StudentID    string
	Title        string
	DateOfReturn string
}

// OverdueBorrows lists records due strictly before asOf.
func (r *Repository) OverdueBorrows(asOf time.Time) ([]OverdueBorrow, error) {
	var rows []OverdueBorrow
	err := r.db.Table("Borrowed_Books").
		Select("Borrowed_Books.borrow_id AS borrow_id, Users.student_id AS student_id, Books.title AS title, Borrowed_Books.date_of_return AS date_of_return").
		Joins("INNER JOIN Books ON Borrowed_Books.book_id = Books.book_id").
		Joins("INNER JOIN Users ON Borrowed_Books.user_id = Users.user_id").
		Where("Borrowed_Books.date_of_return < ?", entities.Today(asOf)).
		Order("Borrowed_Books.date_of_return ASC, Borrowed_Books.borrow_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list overdue borrows: %w", err)
	}
	return rows, nil
}
