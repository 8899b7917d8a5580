package entities

// User is a catalog account. Users are provisioned with `stacks add-user`;
// Password holds a bcrypt hash.
type User struct {
	ID        uint   `gorm:"primaryKey;column:user_id" json:"id"`
	StudentID string `gorm:"column:student_id;not null;uniqueIndex;size:64" json:"student_id"`
	Password  string `gorm:"column:password;not null" json:"-"`
}

type Book struct {
	ID          uint   `gorm:"primaryKey;column:book_id" json:"id"`
	Title       string `gorm:"column:title;not null;index" json:"title"`
	Author      string `gorm:"column:author" json:"author"`
	Genre       string `gorm:"column:genre" json:"genre"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Year        int    `gorm:"column:year" json:"year"`
	Count       int    `gorm:"column:count" json:"count"`
	ISBN        string `gorm:"column:isbn;size:20" json:"isbn"`
	Image       string `gorm:"column:book_img" json:"book_img"`
}

// BorrowRecord is append-only; there is no return action.
type BorrowRecord struct {
	ID           uint   `gorm:"primaryKey;column:borrow_id" json:"id"`
	UserID       uint   `gorm:"column:user_id;not null;index" json:"user_id"`
	BookID       uint   `gorm:"column:book_id;not null;index" json:"book_id"`
	DateBorrowed string `gorm:"column:date_borrowed;size:10" json:"date_borrowed"`
	DateOfReturn string `gorm:"column:date_of_return;size:10;index" json:"date_of_return"`
}

func (User) TableName() string {
	return "Users"
}

func (Book) TableName() string {
	return "Books"
}

func (BorrowRecord) TableName() string {
	return "Borrowed_Books"
}
