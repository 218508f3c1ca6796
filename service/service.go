package service

import (
	"github.com/edoabasi/libcatalog/internal/jsonlog"
	"github.com/edoabasi/libcatalog/repository"
)

type Service interface {
	books
}

// service defines the service layer. It owns all validation and invariant
// checks and translates repository errors into typed faults.
type service struct {
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service.
func New(logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		logger: logger,
		repo:   repo,
	}
}
