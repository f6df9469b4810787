// Package service implements the users directory operations on top of a
// whole-collection storage backend.
package service

import (
	"context"
	"sync"

	"github.com/patric-chuzhbe/userdir/internal/models"
)

type collectionKeeper interface {
	ReadAll(ctx context.Context) []models.User

	WriteAll(ctx context.Context, users []models.User) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type usersStorage interface {
	collectionKeeper
	pinger
}

type userValidator interface {
	CheckNewUser(usr models.NewUser) error
}

type Service struct {
	db        usersStorage
	validator userValidator

	// createMu serializes the read-modify-write of CreateUser within the process.
	createMu sync.Mutex
}

func New(db usersStorage, validator userValidator) *Service {
	return &Service{
		db:        db,
		validator: validator,
	}
}

// ListUsers returns the stored collection as is.
func (s *Service) ListUsers(ctx context.Context) []models.User {
	return s.db.ReadAll(ctx)
}

// CreateUser validates the payload as received, trims every string field,
// gives the record the id len(collection)+1, appends it and rewrites the
// collection.
//
// Validation failures are *validation.Error; failed writes wrap
// storage.ErrPersistence. Nothing is stored unless the whole operation
// succeeds.
func (s *Service) CreateUser(ctx context.Context, payload models.NewUser) (models.User, error) {
	if err := s.validator.CheckNewUser(payload); err != nil {
		return models.User{}, err
	}
	trimmed := payload.Trimmed()

	s.createMu.Lock()
	defer s.createMu.Unlock()

	users := s.db.ReadAll(ctx)
	newUser := trimmed.WithID(len(users) + 1)

	if err := s.db.WriteAll(ctx, append(users, newUser)); err != nil {
		return models.User{}, err
	}

	return newUser, nil
}

// Ping checks the health of the storage layer.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// GetInternalStats returns the number of stored users.
func (s *Service) GetInternalStats(ctx context.Context) models.InternalStatsResponse {
	return models.InternalStatsResponse{
		Users: len(s.db.ReadAll(ctx)),
	}
}
