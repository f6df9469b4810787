// Package mockstorage provides a testify-based mock of the users collection
// storage. It is used by the service and router tests to simulate backend
// failures that are hard to produce with a real file.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/patric-chuzhbe/userdir/internal/models"
)

// StorageMock implements storage.Storage on top of testify's mock.Mock.
type StorageMock struct {
	mock.Mock
}

// ReadAll mocks loading the collection.
func (m *StorageMock) ReadAll(ctx context.Context) []models.User {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	if users == nil {
		return []models.User{}
	}
	return users
}

// WriteAll mocks replacing the collection.
func (m *StorageMock) WriteAll(ctx context.Context, users []models.User) error {
	args := m.Called(ctx, users)
	return args.Error(0)
}

// Ping mocks a health check.
func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks releasing the backend.
func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
