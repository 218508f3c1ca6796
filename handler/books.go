package handler

import (
	"fmt"
	"net/http"

	"github.com/edoabasi/libcatalog/data/dto"
)

// showBookHandler godoc
// @Summary      Get a single book
// @Tags         books
// @Produce      json
// @Param        bookId  path  int  true  "Book ID"
// @Success      200  {object}  data.Book
// @Failure      404  {object}  handler.wireFault
// @Router       /v1/books/{bookId} [get]
func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.GetBook(bookID)
	if err != nil {
		h.domainFaultResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler godoc
// @Summary      List all books ordered by id
// @Tags         books
// @Produce      json
// @Success      200  {array}  data.Book
// @Router       /v1/books [get]
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetAllBooks()
	if err != nil {
		h.domainFaultResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// addBookHandler godoc
// @Summary      Add a new book to the catalog
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        book  body  dto.BookInput  true  "New book"
// @Success      201  {object}  data.Book
// @Failure      409  {object}  handler.wireFault
// @Failure      422  {object}  handler.wireFault
// @Router       /v1/books [post]
func (h *Handler) addBookHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.BookInput
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.AddBook(input)
	if err != nil {
		h.domainFaultResponse(w, r, err)
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/books/%d", book.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler godoc
// @Summary      Update a book's catalog fields
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        bookId  path  int            true  "Book ID"
// @Param        book    body  dto.BookInput  true  "Fields to update"
// @Success      200  {object}  data.Book
// @Failure      404  {object}  handler.wireFault
// @Failure      409  {object}  handler.wireFault
// @Router       /v1/books/{bookId} [patch]
func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var input dto.BookInput
	err = h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.UpdateBook(bookID, input)
	if err != nil {
		h.domainFaultResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler godoc
// @Summary      Delete a book from the catalog
// @Tags         books
// @Produce      json
// @Param        bookId  path  int  true  "Book ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  handler.wireFault
// @Router       /v1/books/{bookId} [delete]
func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	deleted, err := h.service.DeleteBook(bookID)
	if err != nil {
		h.domainFaultResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"deleted": deleted}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// searchBooksHandler godoc
// @Summary      Search books by title/author text and genre
// @Tags         books
// @Produce      json
// @Param        query  query  string  false  "Substring matched against title and author, case-insensitive"
// @Param        genre  query  string  false  "Substring matched against genre, case-insensitive"
// @Success      200  {array}  data.Book
// @Router       /v1/search [get]
func (h *Handler) searchBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	query := h.readString(qs, "query", "")
	genre := h.readString(qs, "genre", "")
	books, err := h.service.SearchBooks(query, genre)
	if err != nil {
		h.domainFaultResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// borrowBookHandler godoc
// @Summary      Borrow an available book
// @Tags         lending
// @Accept       json
// @Produce      json
// @Param        bookId  path  int                      true  "Book ID"
// @Param        body    body  dto.BorrowBookRequestBody true "Borrower"
// @Success      200  {object}  dto.BorrowResult
// @Failure      404  {object}  handler.wireFault
// @Failure      409  {object}  handler.wireFault
// @Failure      422  {object}  handler.wireFault
// @Router       /v1/books/{bookId}/borrow [post]
func (h *Handler) borrowBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.BorrowBookRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	result, err := h.service.BorrowBook(bookID, requestBody.BorrowerName)
	if err != nil {
		h.domainFaultResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"result": result}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// returnBookHandler godoc
// @Summary      Return a borrowed book
// @Tags         lending
// @Produce      json
// @Param        bookId  path  int  true  "Book ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  handler.wireFault
// @Failure      422  {object}  handler.wireFault
// @Router       /v1/books/{bookId}/return [post]
func (h *Handler) returnBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	returned, err := h.service.ReturnBook(bookID)
	if err != nil {
		h.domainFaultResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"returned": returned}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
