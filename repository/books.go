package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/edoabasi/libcatalog/data"
	"github.com/lib/pq"
)

type books interface {
	CreateBook(book *data.Book) error
	GetBook(bookID int64) (*data.Book, error)
	GetAllBooks() ([]*data.Book, error)
	UpdateBook(bookID int64, merge func(book *data.Book) error) (*data.Book, error)
	DeleteBook(bookID int64) error
	SearchBooks(query, genre string) ([]*data.Book, error)
	BorrowBook(bookID int64, borrowerName string, borrowedDate, dueDate time.Time) (*data.Book, error)
	ReturnBook(bookID int64) error
}

// uniqueViolation is the PostgreSQL error code raised when an insert or
// update collides with a unique index, such as the one on isbn.
const uniqueViolation = "23505"

func isDuplicate(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// CreateBook inserts a new book record. The id, availability flag and the
// system timestamps come back from the database.
func (r *repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (title, author, isbn, year_published, genre)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, available, created_at, updated_at`
	args := []interface{}{book.Title, book.Author, book.Isbn, book.Year, book.Genre}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.Available, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		switch {
		case isDuplicate(err):
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(bookID int64) (*data.Book, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, title, author, isbn, year_published, genre, available, borrower_name, borrowed_date, due_date, created_at, updated_at
		FROM books
		WHERE id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := scanBook(r.db.QueryRowContext(ctx, query, bookID), &book)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAllBooks retrieves every book record, ordered by id.
func (r *repository) GetAllBooks() ([]*data.Book, error) {
	query := `
		SELECT id, title, author, isbn, year_published, genre, available, borrower_name, borrowed_date, due_date, created_at, updated_at
		FROM books
		ORDER BY id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

// UpdateBook updates a book record's catalog fields. The whole
// read-merge-write runs in one transaction with the row locked, so the merge
// callback always sees the latest committed record and a concurrent update
// to another field is never overwritten from a stale snapshot. An error from
// merge rolls the transaction back and is returned unchanged. The lending
// fields are owned by BorrowBook and ReturnBook and are never touched here.
func (r *repository) UpdateBook(bookID int64, merge func(book *data.Book) error) (*data.Book, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var book data.Book
	query := `
		SELECT id, title, author, isbn, year_published, genre, available, borrower_name, borrowed_date, due_date, created_at, updated_at
		FROM books
		WHERE id = $1
		FOR UPDATE`
	err = scanBook(tx.QueryRowContext(ctx, query, bookID), &book)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if err := merge(&book); err != nil {
		return nil, err
	}

	update := `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, year_published = $4, genre = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at`
	args := []interface{}{book.Title, book.Author, book.Isbn, book.Year, book.Genre, bookID}
	err = tx.QueryRowContext(ctx, update, args...).Scan(&book.UpdatedAt)
	if err != nil {
		switch {
		case isDuplicate(err):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook deletes a book record. The id is never reused: the books table
// draws ids from a sequence that only moves forward.
func (r *repository) DeleteBook(bookID int64) error {
	if bookID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, bookID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// SearchBooks retrieves books whose title or author contains query and whose
// genre contains genre, both case-insensitive. A blank argument skips that
// filter entirely, so two blanks return the whole catalog.
func (r *repository) SearchBooks(query, genre string) ([]*data.Book, error) {
	stmt := `
		SELECT id, title, author, isbn, year_published, genre, available, borrower_name, borrowed_date, due_date, created_at, updated_at
		FROM books
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%')
		AND ($2 = '' OR genre ILIKE '%' || $2 || '%')
		ORDER BY id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, stmt, query, genre)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

// BorrowBook atomically flips a book from available to borrowed. The row is
// locked for the duration of the transaction so that two concurrent borrows
// of the same book see exactly one winner. When the book is already
// borrowed, the current record is returned alongside ErrBookNotAvailable so
// the caller can report who holds it.
func (r *repository) BorrowBook(bookID int64, borrowerName string, borrowedDate, dueDate time.Time) (*data.Book, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var book data.Book
	query := `
		SELECT id, title, author, isbn, year_published, genre, available, borrower_name, borrowed_date, due_date, created_at, updated_at
		FROM books
		WHERE id = $1
		FOR UPDATE`
	err = scanBook(tx.QueryRowContext(ctx, query, bookID), &book)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if !book.Available {
		return &book, ErrBookNotAvailable
	}

	update := `
		UPDATE books
		SET available = false, borrower_name = $1, borrowed_date = $2, due_date = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at`
	err = tx.QueryRowContext(ctx, update, borrowerName, borrowedDate, dueDate, bookID).Scan(&book.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	book.Available = false
	book.BorrowerName = &borrowerName
	book.BorrowedDate = &borrowedDate
	book.DueDate = &dueDate
	return &book, nil
}

// ReturnBook atomically flips a book from borrowed back to available,
// clearing all three lending fields under the same row lock BorrowBook
// takes. Returning a book that is not borrowed fails with
// ErrBookNotBorrowed and leaves the record untouched.
func (r *repository) ReturnBook(bookID int64) error {
	if bookID < 1 {
		return ErrRecordNotFound
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var available bool
	err = tx.QueryRowContext(ctx, `SELECT available FROM books WHERE id = $1 FOR UPDATE`, bookID).Scan(&available)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	if available {
		return ErrBookNotBorrowed
	}

	update := `
		UPDATE books
		SET available = true, borrower_name = NULL, borrowed_date = NULL, due_date = NULL, updated_at = now()
		WHERE id = $1`
	_, err = tx.ExecContext(ctx, update, bookID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(s scanner, book *data.Book) error {
	return s.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Isbn,
		&book.Year,
		&book.Genre,
		&book.Available,
		&book.BorrowerName,
		&book.BorrowedDate,
		&book.DueDate,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
}

func collectBooks(rows *sql.Rows) ([]*data.Book, error) {
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		if err := scanBook(rows, &book); err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
