package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edoabasi/libcatalog/data"
	"github.com/edoabasi/libcatalog/data/dto"
	"github.com/edoabasi/libcatalog/faults"
	"github.com/edoabasi/libcatalog/internal/validator"
	"github.com/edoabasi/libcatalog/repository"
)

type books interface {
	GetBook(bookID int64) (*data.Book, error)
	GetAllBooks() ([]*data.Book, error)
	AddBook(input dto.BookInput) (*data.Book, error)
	UpdateBook(bookID int64, input dto.BookInput) (*data.Book, error)
	DeleteBook(bookID int64) (bool, error)
	SearchBooks(query, genre string) ([]*data.Book, error)
	BorrowBook(bookID int64, borrowerName string) (*dto.BorrowResult, error)
	ReturnBook(bookID int64) (bool, error)
}

// fieldOrder fixes which validation failure is reported when several
// fields are invalid at once.
var fieldOrder = []string{"title", "author", "isbn", "genre"}

// firstInvalid converts the highest-priority entry of a validator's error
// map into an InvalidInput fault.
func firstInvalid(v *validator.Validator) error {
	for _, field := range fieldOrder {
		if message, ok := v.Errors[field]; ok {
			return &faults.InvalidInput{Field: field, ValidationMessage: message}
		}
	}
	for field, message := range v.Errors {
		return &faults.InvalidInput{Field: field, ValidationMessage: message}
	}
	return nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// GetBook service retrieves a single book by its ID.
func (s *service) GetBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, &faults.BookNotFound{BookID: bookID}
		default:
			return nil, err
		}
	}
	return book, nil
}

// GetAllBooks service retrieves every book in the catalog, ordered by id.
func (s *service) GetAllBooks() ([]*data.Book, error) {
	return s.repo.GetAllBooks()
}

// AddBook service creates a new book. Title, author and isbn are required
// and checked in that order, stopping at the first failure; all three are
// persisted trimmed.
func (s *service) AddBook(input dto.BookInput) (*data.Book, error) {
	title := trimmed(input.Title)
	if title == "" {
		return nil, &faults.InvalidInput{Field: "title", ValidationMessage: "Title is required and cannot be empty"}
	}
	author := trimmed(input.Author)
	if author == "" {
		return nil, &faults.InvalidInput{Field: "author", ValidationMessage: "Author is required and cannot be empty"}
	}
	isbn := trimmed(input.Isbn)
	if isbn == "" {
		return nil, &faults.InvalidInput{Field: "isbn", ValidationMessage: "ISBN is required and cannot be empty"}
	}

	book := &data.Book{
		Title:     title,
		Author:    author,
		Isbn:      isbn,
		Year:      input.Year,
		Available: true,
	}
	if input.Genre.Set {
		if genre := trimmed(input.Genre.Value); genre != "" {
			book.Genre = &genre
		}
	}

	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, firstInvalid(v)
	}

	err := s.repo.CreateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, &faults.DuplicateISBN{ISBN: isbn}
		default:
			return nil, err
		}
	}
	return book, nil
}

// UpdateBook service updates the catalog fields of a specific book. Only
// fields carrying a non-blank value overwrite; an absent or blank title,
// author or isbn leaves the stored value unchanged. Genre is tri-state: an
// absent key leaves it alone and an explicit null (or blank value) clears it.
// The merge runs inside the repository transaction while the row is locked,
// so it always works from the latest committed record.
func (s *service) UpdateBook(bookID int64, input dto.BookInput) (*data.Book, error) {
	var isbn string
	book, err := s.repo.UpdateBook(bookID, func(book *data.Book) error {
		if title := trimmed(input.Title); title != "" {
			book.Title = title
		}
		if author := trimmed(input.Author); author != "" {
			book.Author = author
		}
		if value := trimmed(input.Isbn); value != "" {
			book.Isbn = value
		}
		if input.Year != nil {
			book.Year = input.Year
		}
		if input.Genre.Set {
			if genre := trimmed(input.Genre.Value); genre != "" {
				book.Genre = &genre
			} else {
				book.Genre = nil
			}
		}
		isbn = book.Isbn

		v := validator.New()
		if data.ValidateBook(v, book); !v.Valid() {
			return firstInvalid(v)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, &faults.BookNotFound{BookID: bookID}
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, &faults.DuplicateISBN{ISBN: isbn}
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeleteBook service removes a book from the catalog. The removal is hard:
// no tombstone remains and the id is never reused.
func (s *service) DeleteBook(bookID int64) (bool, error) {
	err := s.repo.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return false, &faults.BookNotFound{BookID: bookID}
		default:
			return false, err
		}
	}
	return true, nil
}

// SearchBooks service finds books whose title or author contains query and
// whose genre contains genre, both case-insensitive substring matches. A
// blank argument skips that filter; an empty match set is a valid result.
func (s *service) SearchBooks(query, genre string) ([]*data.Book, error) {
	return s.repo.SearchBooks(strings.TrimSpace(query), strings.TrimSpace(genre))
}

// BorrowBook service borrows an available book for the fixed loan period.
// The borrower name is validated before the book is even looked up.
func (s *service) BorrowBook(bookID int64, borrowerName string) (*dto.BorrowResult, error) {
	name := strings.TrimSpace(borrowerName)
	if name == "" {
		return nil, &faults.InvalidInput{Field: "borrower_name", ValidationMessage: "Borrower name is required"}
	}

	borrowedDate := time.Now()
	dueDate := borrowedDate.AddDate(0, 0, data.DefaultBorrowDays)
	book, err := s.repo.BorrowBook(bookID, name, borrowedDate, dueDate)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, &faults.BookNotFound{BookID: bookID}
		case errors.Is(err, repository.ErrBookNotAvailable):
			fault := &faults.BookNotAvailable{BookID: bookID}
			if book != nil && book.BorrowerName != nil {
				fault.CurrentBorrower = *book.BorrowerName
			}
			return nil, fault
		default:
			return nil, err
		}
	}

	return &dto.BorrowResult{
		Success: true,
		DueDate: dueDate,
		Message: fmt.Sprintf("Book %q successfully borrowed. Please return by %s.", book.Title, dueDate.Format("2006-01-02")),
	}, nil
}

// ReturnBook service returns a borrowed book, clearing all three lending
// fields. Returning a book that is not borrowed is an invalid request, not
// a no-op.
func (s *service) ReturnBook(bookID int64) (bool, error) {
	err := s.repo.ReturnBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return false, &faults.BookNotFound{BookID: bookID}
		case errors.Is(err, repository.ErrBookNotBorrowed):
			return false, &faults.InvalidInput{Field: "book_id", ValidationMessage: "This book is not currently borrowed"}
		default:
			return false, err
		}
	}
	return true, nil
}
