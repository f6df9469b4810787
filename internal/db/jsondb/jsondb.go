// Package jsondb keeps the users collection in a flat JSON file. Every read
// loads the whole file and every write rewrites it.
package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/userdir/internal/db/storage"
	"github.com/patric-chuzhbe/userdir/internal/logger"
	"github.com/patric-chuzhbe/userdir/internal/models"
)

type JSONDB struct {
	fileName string
}

func writeToJSONFile(fileName string, users []models.User) error {
	jsonData, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(jsonData)
	if err != nil {
		return fmt.Errorf("error writing to file: %w", err)
	}

	return file.Sync()
}

func parseJSONFile(fileName string, users *[]models.User) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	err = decoder.Decode(users)
	if err != nil {
		return err
	}

	return nil
}

// New returns a JSONDB backed by fileName. The file itself may be missing,
// its directory is created if needed.
func New(fileName string) (*JSONDB, error) {
	dir := filepath.Dir(fileName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/db/jsondb/jsondb.go/New(): error while `os.MkdirAll()` calling: %w",
				err,
			)
	}

	return &JSONDB{fileName: fileName}, nil
}

// ReadAll loads the collection. A missing or malformed file yields an empty
// collection.
func (db *JSONDB) ReadAll(ctx context.Context) []models.User {
	users := []models.User{}

	err := parseJSONFile(db.fileName, &users)
	if err != nil {
		logger.Log.Errorw("Error reading users file", "file", db.fileName, zap.Error(err))
		return []models.User{}
	}
	if users == nil {
		return []models.User{}
	}

	return users
}

// WriteAll overwrites the file with the given collection.
func (db *JSONDB) WriteAll(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}

	err := writeToJSONFile(db.fileName, users)
	if err != nil {
		logger.Log.Errorw("Error writing users file", "file", db.fileName, zap.Error(err))
		return fmt.Errorf("%w: %w", storage.ErrPersistence, err)
	}

	return nil
}

func (db *JSONDB) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(db.fileName))

	return err
}

func (db *JSONDB) Close() error {
	return nil
}
