// Package faults defines the typed fault values raised by the catalog
// operations. Each fault carries a category code and the structured detail
// fields callers need to branch on the failure programmatically, rather
// than a flattened error string.
//
// Codes follow the Client.*/Server.* convention: Client.* faults indicate
// a problem with the request, Server.* faults indicate an internal failure.
package faults

import "fmt"

const (
	CodeBookNotFound     = "Client.BookNotFound"
	CodeBookNotAvailable = "Client.BookNotAvailable"
	CodeInvalidInput     = "Client.InvalidInput"
	CodeDuplicateISBN    = "Client.DuplicateISBN"
	CodeInternal         = "Server.Internal"
)

// BookNotFound is raised when a referenced book id does not exist.
type BookNotFound struct {
	BookID int64 `json:"book_id"`
}

func (f *BookNotFound) Error() string {
	return fmt.Sprintf("Book with ID %d was not found in the catalog.", f.BookID)
}

// Code returns the fault category code.
func (f *BookNotFound) Code() string { return CodeBookNotFound }

// BookNotAvailable is raised when attempting to borrow a book that is
// already borrowed. It identifies the current borrower so the caller
// knows what is blocking the request.
type BookNotAvailable struct {
	BookID          int64  `json:"book_id"`
	CurrentBorrower string `json:"current_borrower"`
}

func (f *BookNotAvailable) Error() string {
	return fmt.Sprintf("Book with ID %d is currently borrowed by %s.", f.BookID, f.CurrentBorrower)
}

// Code returns the fault category code.
func (f *BookNotAvailable) Code() string { return CodeBookNotAvailable }

// InvalidInput is raised when a caller-supplied value fails a validation
// rule, including logically inconsistent state-change requests such as
// returning a book that is not borrowed.
type InvalidInput struct {
	Field             string `json:"field"`
	ValidationMessage string `json:"validation_message"`
}

func (f *InvalidInput) Error() string {
	return fmt.Sprintf("Validation error on field %q: %s", f.Field, f.ValidationMessage)
}

// Code returns the fault category code.
func (f *InvalidInput) Code() string { return CodeInvalidInput }

// DuplicateISBN is raised when a write would leave two live book records
// sharing the same ISBN.
type DuplicateISBN struct {
	ISBN string `json:"isbn"`
}

func (f *DuplicateISBN) Error() string {
	return fmt.Sprintf("A book with ISBN %s already exists in the catalog.", f.ISBN)
}

// Code returns the fault category code.
func (f *DuplicateISBN) Code() string { return CodeDuplicateISBN }
