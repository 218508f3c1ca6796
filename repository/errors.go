package repository

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateRecord  = errors.New("duplicate record")
	ErrBookNotAvailable = errors.New("book not available")
	ErrBookNotBorrowed  = errors.New("book not borrowed")
)
