package service_test

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edoabasi/libcatalog/data"
	"github.com/edoabasi/libcatalog/data/dto"
	"github.com/edoabasi/libcatalog/faults"
	"github.com/edoabasi/libcatalog/internal/jsonlog"
	"github.com/edoabasi/libcatalog/repository"
	"github.com/edoabasi/libcatalog/service"
)

// mockRepo is an in-memory stand-in for the Postgres repository. It mirrors
// the storage gateway contract: generated never-reused ids, a uniqueness
// rule on isbn, and check-and-set lending transitions.
type mockRepo struct {
	mu     sync.Mutex
	nextID int64
	books  map[int64]*data.Book
}

func newMockRepo() *mockRepo {
	return &mockRepo{nextID: 1, books: make(map[int64]*data.Book)}
}

func clone(book *data.Book) *data.Book {
	c := *book
	return &c
}

func (m *mockRepo) CreateBook(book *data.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.books {
		if existing.Isbn == book.Isbn {
			return repository.ErrDuplicateRecord
		}
	}
	now := time.Now()
	book.ID = m.nextID
	m.nextID++
	book.Available = true
	book.CreatedAt = now
	book.UpdatedAt = now
	m.books[book.ID] = clone(book)
	return nil
}

func (m *mockRepo) GetBook(bookID int64) (*data.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	book, ok := m.books[bookID]
	if bookID < 1 || !ok {
		return nil, repository.ErrRecordNotFound
	}
	return clone(book), nil
}

func (m *mockRepo) GetAllBooks() ([]*data.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	books := []*data.Book{}
	for _, book := range m.books {
		books = append(books, clone(book))
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

// UpdateBook holds the store lock across the merge, mirroring the row lock
// the real gateway takes for its read-merge-write transaction.
func (m *mockRepo) UpdateBook(bookID int64, merge func(book *data.Book) error) (*data.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.books[bookID]
	if bookID < 1 || !ok {
		return nil, repository.ErrRecordNotFound
	}
	book := clone(stored)
	if err := merge(book); err != nil {
		return nil, err
	}
	for id, existing := range m.books {
		if id != bookID && existing.Isbn == book.Isbn {
			return nil, repository.ErrDuplicateRecord
		}
	}
	book.UpdatedAt = time.Now()
	m.books[bookID] = clone(book)
	return book, nil
}

func (m *mockRepo) DeleteBook(bookID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[bookID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.books, bookID)
	return nil
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (m *mockRepo) SearchBooks(query, genre string) ([]*data.Book, error) {
	all, _ := m.GetAllBooks()
	books := []*data.Book{}
	for _, book := range all {
		if query != "" && !contains(book.Title, query) && !contains(book.Author, query) {
			continue
		}
		if genre != "" && (book.Genre == nil || !contains(*book.Genre, genre)) {
			continue
		}
		books = append(books, book)
	}
	return books, nil
}

func (m *mockRepo) BorrowBook(bookID int64, borrowerName string, borrowedDate, dueDate time.Time) (*data.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	book, ok := m.books[bookID]
	if bookID < 1 || !ok {
		return nil, repository.ErrRecordNotFound
	}
	if !book.Available {
		return clone(book), repository.ErrBookNotAvailable
	}
	book.Available = false
	book.BorrowerName = &borrowerName
	book.BorrowedDate = &borrowedDate
	book.DueDate = &dueDate
	book.UpdatedAt = time.Now()
	return clone(book), nil
}

func (m *mockRepo) ReturnBook(bookID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	book, ok := m.books[bookID]
	if bookID < 1 || !ok {
		return repository.ErrRecordNotFound
	}
	if book.Available {
		return repository.ErrBookNotBorrowed
	}
	book.Available = true
	book.BorrowerName = nil
	book.BorrowedDate = nil
	book.DueDate = nil
	book.UpdatedAt = time.Now()
	return nil
}

func newTestService() (service.Service, *mockRepo) {
	repo := newMockRepo()
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	return service.New(logger, repo), repo
}

func strPtr(s string) *string { return &s }

func int32Ptr(i int32) *int32 { return &i }

func input(title, author, isbn string) dto.BookInput {
	return dto.BookInput{Title: strPtr(title), Author: strPtr(author), Isbn: strPtr(isbn)}
}

func seedBook(t *testing.T, svc service.Service, title, author, isbn, genre string) *data.Book {
	t.Helper()
	in := input(title, author, isbn)
	if genre != "" {
		in.Genre = dto.OptionalString{Set: true, Value: &genre}
	}
	book, err := svc.AddBook(in)
	require.NoError(t, err)
	return book
}

func TestAddBookRoundTrip(t *testing.T) {
	svc, _ := newTestService()

	in := input("  The Great Gatsby  ", " F. Scott Fitzgerald ", " 978-0743273565 ")
	in.Year = int32Ptr(1925)
	in.Genre = dto.OptionalString{Set: true, Value: strPtr(" Fiction ")}

	created, err := svc.AddBook(in)
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0))
	assert.True(t, created.Available)

	got, err := svc.GetBook(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Great Gatsby", got.Title)
	assert.Equal(t, "F. Scott Fitzgerald", got.Author)
	assert.Equal(t, "978-0743273565", got.Isbn)
	require.NotNil(t, got.Year)
	assert.Equal(t, int32(1925), *got.Year)
	require.NotNil(t, got.Genre)
	assert.Equal(t, "Fiction", *got.Genre)
	assert.True(t, got.Available)
	assert.Nil(t, got.BorrowerName)
	assert.Nil(t, got.BorrowedDate)
	assert.Nil(t, got.DueDate)
}

func TestAddBookValidationOrder(t *testing.T) {
	tests := []struct {
		name      string
		input     dto.BookInput
		wantField string
	}{
		{"all blank reports title first", input("", "", ""), "title"},
		{"whitespace title reports title", input("   ", "Author", "isbn-1"), "title"},
		{"blank author and isbn reports author", input("Title", "  ", ""), "author"},
		{"blank isbn reports isbn", input("Title", "Author", ""), "isbn"},
		{"missing fields report title first", dto.BookInput{}, "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			_, err := svc.AddBook(tt.input)
			var fault *faults.InvalidInput
			require.ErrorAs(t, err, &fault)
			assert.Equal(t, tt.wantField, fault.Field)
			assert.Equal(t, faults.CodeInvalidInput, fault.Code())
		})
	}
}

func TestAddBookFieldLengthLimits(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddBook(input(strings.Repeat("x", 256), "Author", "isbn-1"))
	var fault *faults.InvalidInput
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "title", fault.Field)

	_, err = svc.AddBook(input("Title", "Author", strings.Repeat("9", 21)))
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "isbn", fault.Field)
}

func TestAddBookDuplicateISBN(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.AddBook(input("Clean Code", "Robert C. Martin", "978-0132350884"))
	require.NoError(t, err)
	assert.True(t, first.Available)
	assert.Greater(t, first.ID, int64(0))

	_, err = svc.AddBook(input("Another Title", "Another Author", "978-0132350884"))
	var fault *faults.DuplicateISBN
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "978-0132350884", fault.ISBN)
	assert.Equal(t, faults.CodeDuplicateISBN, fault.Code())
}

func TestGetBook(t *testing.T) {
	svc, _ := newTestService()
	seeded := seedBook(t, svc, "The Great Gatsby", "F. Scott Fitzgerald", "978-0743273565", "Fiction")

	got, err := svc.GetBook(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "978-0743273565", got.Isbn)

	_, err = svc.GetBook(9999)
	var fault *faults.BookNotFound
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, int64(9999), fault.BookID)
	assert.Equal(t, faults.CodeBookNotFound, fault.Code())
}

func TestGetAllBooksOrderedByID(t *testing.T) {
	svc, _ := newTestService()

	books, err := svc.GetAllBooks()
	require.NoError(t, err)
	assert.Empty(t, books)

	for i := 0; i < 5; i++ {
		seedBook(t, svc, fmt.Sprintf("Book %d", i), "Author", fmt.Sprintf("isbn-%d", i), "")
	}
	books, err = svc.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 5)
	for i := 1; i < len(books); i++ {
		assert.Less(t, books[i-1].ID, books[i].ID)
	}
}

func TestUpdateBookPartialMerge(t *testing.T) {
	svc, _ := newTestService()
	seeded := seedBook(t, svc, "1984", "George Orwell", "978-0451524935", "Dystopian")

	// Blank or absent title/author/isbn leave the stored values unchanged.
	updated, err := svc.UpdateBook(seeded.ID, dto.BookInput{Title: strPtr("   "), Author: strPtr("Eric Arthur Blair")})
	require.NoError(t, err)
	assert.Equal(t, "1984", updated.Title)
	assert.Equal(t, "Eric Arthur Blair", updated.Author)
	assert.Equal(t, "978-0451524935", updated.Isbn)
	require.NotNil(t, updated.Genre)
	assert.Equal(t, "Dystopian", *updated.Genre)

	// A present year overwrites.
	updated, err = svc.UpdateBook(seeded.ID, dto.BookInput{Year: int32Ptr(1949)})
	require.NoError(t, err)
	require.NotNil(t, updated.Year)
	assert.Equal(t, int32(1949), *updated.Year)

	// An explicit null clears genre; an absent key leaves it alone.
	updated, err = svc.UpdateBook(seeded.ID, dto.BookInput{Genre: dto.OptionalString{Set: true, Value: nil}})
	require.NoError(t, err)
	assert.Nil(t, updated.Genre)

	updated, err = svc.UpdateBook(seeded.ID, dto.BookInput{Title: strPtr("Nineteen Eighty-Four")})
	require.NoError(t, err)
	assert.Equal(t, "Nineteen Eighty-Four", updated.Title)
	assert.Nil(t, updated.Genre)
}

func TestUpdateBookConcurrentWritersKeepBothFields(t *testing.T) {
	svc, _ := newTestService()
	seeded := seedBook(t, svc, "Old Title", "Old Author", "isbn-race", "")

	// Each writer touches a different field. Because the merge runs against
	// the latest committed record while the row is held, neither writer can
	// overwrite the other's field from a stale snapshot, regardless of order.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.UpdateBook(seeded.ID, dto.BookInput{Title: strPtr("New Title")})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := svc.UpdateBook(seeded.ID, dto.BookInput{Author: strPtr("New Author")})
		assert.NoError(t, err)
	}()
	wg.Wait()

	book, err := svc.GetBook(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", book.Title)
	assert.Equal(t, "New Author", book.Author)
}

func TestUpdateBookInvalidMergeLeavesRecordUntouched(t *testing.T) {
	svc, _ := newTestService()
	seeded := seedBook(t, svc, "Kept Title", "Author", "isbn-kept", "")

	_, err := svc.UpdateBook(seeded.ID, dto.BookInput{Title: strPtr(strings.Repeat("x", 256))})
	var fault *faults.InvalidInput
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "title", fault.Field)

	book, err := svc.GetBook(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kept Title", book.Title)
}

func TestUpdateBookNotFound(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.UpdateBook(42, input("Title", "Author", "isbn-42"))
	var fault *faults.BookNotFound
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, int64(42), fault.BookID)
}

func TestUpdateBookDuplicateISBN(t *testing.T) {
	svc, _ := newTestService()
	first := seedBook(t, svc, "First", "Author", "isbn-first", "")
	second := seedBook(t, svc, "Second", "Author", "isbn-second", "")

	_, err := svc.UpdateBook(second.ID, dto.BookInput{Isbn: strPtr(first.Isbn)})
	var fault *faults.DuplicateISBN
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "isbn-first", fault.ISBN)

	// Re-writing a book's own isbn is not a conflict.
	updated, err := svc.UpdateBook(second.ID, dto.BookInput{Isbn: strPtr("isbn-second")})
	require.NoError(t, err)
	assert.Equal(t, "isbn-second", updated.Isbn)
}

func TestDeleteBookThenGet(t *testing.T) {
	svc, _ := newTestService()
	seeded := seedBook(t, svc, "Doomed", "Author", "isbn-doomed", "")

	deleted, err := svc.DeleteBook(seeded.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var fault *faults.BookNotFound
	_, err = svc.GetBook(seeded.ID)
	require.ErrorAs(t, err, &fault)

	// A second delete of the same id also fails with not-found.
	_, err = svc.DeleteBook(seeded.ID)
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, seeded.ID, fault.BookID)
}

func TestSearchBooks(t *testing.T) {
	svc, _ := newTestService()
	seedBook(t, svc, "The Great Gatsby", "F. Scott Fitzgerald", "isbn-1", "Fiction")
	seedBook(t, svc, "1984", "George Orwell", "isbn-2", "Dystopian")
	seedBook(t, svc, "Brave New World", "Aldous Huxley", "isbn-3", "Dystopian")
	seedBook(t, svc, "Dune", "Frank Herbert", "isbn-4", "Science Fiction")

	t.Run("query matches title substring case-insensitively", func(t *testing.T) {
		books, err := svc.SearchBooks("gat", "")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "The Great Gatsby", books[0].Title)
	})

	t.Run("query matches author substring", func(t *testing.T) {
		books, err := svc.SearchBooks("orwell", "")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "1984", books[0].Title)
	})

	t.Run("genre filter uses substring match", func(t *testing.T) {
		books, err := svc.SearchBooks("", "Fic")
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "The Great Gatsby", books[0].Title)
		assert.Equal(t, "Dune", books[1].Title)

		books, err = svc.SearchBooks("", "Dyst")
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("blank filters return everything", func(t *testing.T) {
		books, err := svc.SearchBooks("", "   ")
		require.NoError(t, err)
		assert.Len(t, books, 4)
	})

	t.Run("no match is an empty result, not an error", func(t *testing.T) {
		books, err := svc.SearchBooks("zzz", "")
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("combined filters equal the intersection of single filters", func(t *testing.T) {
		ids := func(books []*data.Book) []int64 {
			out := []int64{}
			for _, b := range books {
				out = append(out, b.ID)
			}
			return out
		}
		for _, tc := range []struct{ query, genre string }{
			{"new", "Dyst"},
			{"e", "Fiction"},
			{"orwell", "Science"},
		} {
			both, err := svc.SearchBooks(tc.query, tc.genre)
			require.NoError(t, err)
			byQuery, err := svc.SearchBooks(tc.query, "")
			require.NoError(t, err)
			byGenre, err := svc.SearchBooks("", tc.genre)
			require.NoError(t, err)

			seen := map[int64]bool{}
			for _, id := range ids(byQuery) {
				seen[id] = true
			}
			want := []int64{}
			for _, id := range ids(byGenre) {
				if seen[id] {
					want = append(want, id)
				}
			}
			assert.Equal(t, want, ids(both), "query=%q genre=%q", tc.query, tc.genre)
		}
	})
}

func TestBorrowBook(t *testing.T) {
	svc, _ := newTestService()
	seeded := seedBook(t, svc, "The Great Gatsby", "F. Scott Fitzgerald", "978-0743273565", "Fiction")

	t.Run("blank name fails before the book is looked up", func(t *testing.T) {
		_, err := svc.BorrowBook(424242, "   ")
		var fault *faults.InvalidInput
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, "borrower_name", fault.Field)
	})

	t.Run("missing book", func(t *testing.T) {
		_, err := svc.BorrowBook(9999, "John Doe")
		var fault *faults.BookNotFound
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, int64(9999), fault.BookID)
	})

	t.Run("borrowing an available book", func(t *testing.T) {
		result, err := svc.BorrowBook(seeded.ID, "  John Doe  ")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Contains(t, result.Message, `"The Great Gatsby"`)
		assert.Contains(t, result.Message, result.DueDate.Format("2006-01-02"))

		book, err := svc.GetBook(seeded.ID)
		require.NoError(t, err)
		assert.False(t, book.Available)
		require.NotNil(t, book.BorrowerName)
		assert.Equal(t, "John Doe", *book.BorrowerName)
		require.NotNil(t, book.BorrowedDate)
		require.NotNil(t, book.DueDate)
		assert.Equal(t, book.BorrowedDate.AddDate(0, 0, data.DefaultBorrowDays), *book.DueDate)
		assert.Equal(t, *book.DueDate, result.DueDate)
	})

	t.Run("borrowing an already borrowed book", func(t *testing.T) {
		_, err := svc.BorrowBook(seeded.ID, "Jane")
		var fault *faults.BookNotAvailable
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, seeded.ID, fault.BookID)
		assert.Equal(t, "John Doe", fault.CurrentBorrower)
		assert.Equal(t, faults.CodeBookNotAvailable, fault.Code())

		// The failed attempt changed nothing.
		book, err := svc.GetBook(seeded.ID)
		require.NoError(t, err)
		require.NotNil(t, book.BorrowerName)
		assert.Equal(t, "John Doe", *book.BorrowerName)
	})
}

func TestReturnBook(t *testing.T) {
	svc, _ := newTestService()
	seeded := seedBook(t, svc, "1984", "George Orwell", "978-0451524935", "Dystopian")

	t.Run("returning an available book is invalid input", func(t *testing.T) {
		_, err := svc.ReturnBook(seeded.ID)
		var fault *faults.InvalidInput
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, "book_id", fault.Field)
	})

	t.Run("missing book", func(t *testing.T) {
		_, err := svc.ReturnBook(9999)
		var fault *faults.BookNotFound
		require.ErrorAs(t, err, &fault)
	})

	t.Run("returning a borrowed book clears the lending fields", func(t *testing.T) {
		_, err := svc.BorrowBook(seeded.ID, "John Doe")
		require.NoError(t, err)

		returned, err := svc.ReturnBook(seeded.ID)
		require.NoError(t, err)
		assert.True(t, returned)

		book, err := svc.GetBook(seeded.ID)
		require.NoError(t, err)
		assert.True(t, book.Available)
		assert.Nil(t, book.BorrowerName)
		assert.Nil(t, book.BorrowedDate)
		assert.Nil(t, book.DueDate)

		// The book can be borrowed again once returned.
		_, err = svc.BorrowBook(seeded.ID, "Jane")
		require.NoError(t, err)
	})
}

func TestUnexpectedRepositoryErrorsPropagate(t *testing.T) {
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	svc := service.New(logger, failingRepo{})

	_, err := svc.GetBook(1)
	require.Error(t, err)
	var notFound *faults.BookNotFound
	assert.False(t, errors.As(err, &notFound), "storage failures must not masquerade as client faults")
}

// failingRepo simulates an unavailable storage engine.
type failingRepo struct{}

var errStorageDown = errors.New("storage unavailable")

func (failingRepo) CreateBook(*data.Book) error                { return errStorageDown }
func (failingRepo) GetBook(int64) (*data.Book, error)          { return nil, errStorageDown }
func (failingRepo) GetAllBooks() ([]*data.Book, error)         { return nil, errStorageDown }
func (failingRepo) UpdateBook(int64, func(book *data.Book) error) (*data.Book, error) {
	return nil, errStorageDown
}
func (failingRepo) DeleteBook(int64) error                     { return errStorageDown }
func (failingRepo) SearchBooks(string, string) ([]*data.Book, error) {
	return nil, errStorageDown
}
func (failingRepo) BorrowBook(int64, string, time.Time, time.Time) (*data.Book, error) {
	return nil, errStorageDown
}
func (failingRepo) ReturnBook(int64) error { return errStorageDown }
