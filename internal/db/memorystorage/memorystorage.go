// Package memorystorage keeps the users collection in process memory. It is
// selected when no file, Redis or Postgres storage is configured.
package memorystorage

import (
	"context"
	"sync"

	"github.com/patric-chuzhbe/userdir/internal/models"
)

type MemoryStorage struct {
	mu    sync.RWMutex
	users []models.User
}

// New returns a storage holding a copy of seed.
func New(seed ...models.User) (*MemoryStorage, error) {
	return &MemoryStorage{
		users: append([]models.User{}, seed...),
	}, nil
}

func (theStorage *MemoryStorage) ReadAll(ctx context.Context) []models.User {
	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	return append([]models.User{}, theStorage.users...)
}

func (theStorage *MemoryStorage) WriteAll(ctx context.Context, users []models.User) error {
	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	theStorage.users = append([]models.User{}, users...)

	return nil
}

func (theStorage *MemoryStorage) Close() error {
	return nil
}

func (theStorage *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}
