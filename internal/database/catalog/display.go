package catalog

import "github.com/mrlokans/stacks/internal/entities"

// BookView is the display record of a book on the search and detail pages.
type BookView struct {
	ID          uint
	Title       string
	Author      string
	Genre       string
	Description string
	Year        int
	Quantity    int
	ISBN        string
	Image       string
}

// BorrowedBookView is one row of a user's borrowed books page.
type BorrowedBookView struct {
	ID           uint
	Title        string
	Image        string
	DateOfReturn string
}

func NewBookView(b entities.Book) BookView {
	return BookView{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Description: b.Description,
		Year:        b.Year,
		Quantity:    b.Count,
		ISBN:        b.ISBN,
		Image:       b.Image,
	}
}

func NewBookViews(books []entities.Book) []BookView {
	views := make([]BookView, 0, len(books))
	for _, b := range books {
		views = append(views, NewBookView(b))
	}
	return views
}
