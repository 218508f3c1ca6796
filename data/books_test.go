package data

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edoabasi/libcatalog/internal/validator"
)

func TestValidateBook(t *testing.T) {
	genre := "Fiction"
	valid := Book{
		Title:  "The Great Gatsby",
		Author: "F. Scott Fitzgerald",
		Isbn:   "978-0743273565",
		Genre:  &genre,
	}

	t.Run("valid book passes", func(t *testing.T) {
		v := validator.New()
		ValidateBook(v, &valid)
		assert.True(t, v.Valid())
	})

	t.Run("length limits", func(t *testing.T) {
		tests := []struct {
			field  string
			mutate func(b *Book)
		}{
			{"title", func(b *Book) { b.Title = strings.Repeat("x", 256) }},
			{"author", func(b *Book) { b.Author = strings.Repeat("x", 256) }},
			{"isbn", func(b *Book) { b.Isbn = strings.Repeat("9", 21) }},
			{"genre", func(b *Book) { g := strings.Repeat("x", 101); b.Genre = &g }},
		}
		for _, tt := range tests {
			t.Run(tt.field, func(t *testing.T) {
				book := valid
				tt.mutate(&book)
				v := validator.New()
				ValidateBook(v, &book)
				assert.False(t, v.Valid())
				assert.Contains(t, v.Errors, tt.field)
			})
		}
	})

	t.Run("nil genre is not checked", func(t *testing.T) {
		book := valid
		book.Genre = nil
		v := validator.New()
		ValidateBook(v, &book)
		assert.True(t, v.Valid())
	})
}
