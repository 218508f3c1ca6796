package dto

import (
	"encoding/json"
	"time"
)

// OptionalString distinguishes a field that was absent from the request
// body from one that was explicitly set to null. Set is true whenever the
// key appeared in the JSON; Value is nil for an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only invoked when the key is present, which is what
// makes the absent/null distinction observable.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON round-trips the tri-state: unset and explicit-null both
// encode as null.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// BookInput defines the request body for AddBook and UpdateBook. Title,
// author and isbn are logically required on Add but the transport may
// deliver them empty or absent, so they are pointers and validation is
// the service's job. On Update, only fields carrying a value overwrite;
// genre additionally supports an explicit null to clear it.
type BookInput struct {
	Title  *string        `json:"title"`
	Author *string        `json:"author"`
	Isbn   *string        `json:"isbn"`
	Year   *int32         `json:"year"`
	Genre  OptionalString `json:"genre"`
}

// BorrowBookRequestBody defines the request body for BorrowBook.
type BorrowBookRequestBody struct {
	BorrowerName string `json:"borrower_name"`
}

// BorrowResult defines the response body for a successful BorrowBook call.
type BorrowResult struct {
	Success bool      `json:"success"`
	DueDate time.Time `json:"due_date"`
	Message string    `json:"message"`
}
