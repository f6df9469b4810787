// Package storage declares the contract every users collection backend
// fulfils and the errors they share.
package storage

import (
	"context"
	"errors"

	"github.com/patric-chuzhbe/userdir/internal/models"
)

// ErrPersistence is wrapped by every failed write of the collection.
var ErrPersistence = errors.New("failed to save users")

// Storage keeps the whole users collection as one document.
type Storage interface {
	// ReadAll never fails: a backend that cannot load the collection logs
	// the reason and returns an empty one.
	ReadAll(ctx context.Context) []models.User

	// WriteAll replaces the stored collection; errors wrap ErrPersistence.
	WriteAll(ctx context.Context, users []models.User) error

	Ping(ctx context.Context) error

	Close() error
}
