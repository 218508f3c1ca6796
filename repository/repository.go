package repository

import (
	"database/sql"
)

type Repository interface {
	books
}

// repository defines the app's repository layer over the books table.
type repository struct {
	db *sql.DB
}

// New creates a new instance of Repository.
func New(db *sql.DB) *repository {
	return &repository{db: db}
}
