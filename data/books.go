package data

import (
	"time"

	"github.com/edoabasi/libcatalog/internal/validator"
)

// DefaultBorrowDays is the fixed loan period: a borrowed book is due
// this many days after the borrow date.
const DefaultBorrowDays = 14

// Book defines a book record in the catalog. The three lending fields are
// pointers so that their absence is representable: they are all nil when
// the book is available and all set when it is borrowed.
type Book struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Author       string     `json:"author"`
	Isbn         string     `json:"isbn"`
	Year         *int32     `json:"year,omitempty"`
	Genre        *string    `json:"genre,omitempty"`
	Available    bool       `json:"available"`
	BorrowerName *string    `json:"borrower_name,omitempty"`
	BorrowedDate *time.Time `json:"borrowed_date,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ValidateBook checks the field-length limits that the books table enforces,
// so that an over-long value is rejected before it reaches the database.
// Required-field checks live in the service layer because their order is
// part of the operation contract.
func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(len(book.Title) <= 255, "title", "must not be more than 255 characters")
	v.Check(len(book.Author) <= 255, "author", "must not be more than 255 characters")
	v.Check(len(book.Isbn) <= 20, "isbn", "must not be more than 20 characters")
	if book.Genre != nil {
		v.Check(len(*book.Genre) <= 100, "genre", "must not be more than 100 characters")
	}
}
