// Package redisdb keeps the users collection as one JSON value under a
// single Redis key.
package redisdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/userdir/internal/db/storage"
	"github.com/patric-chuzhbe/userdir/internal/logger"
	"github.com/patric-chuzhbe/userdir/internal/models"
)

// DefaultKey is the key the collection is stored under.
const DefaultKey = "userdir:users"

type RedisDB struct {
	client            *redis.Client
	key               string
	connectionTimeout time.Duration
}

// New connects to addr and checks the connection.
func New(ctx context.Context, addr string, connectionTimeout time.Duration, key string) (*RedisDB, error) {
	if key == "" {
		key = DefaultKey
	}

	result := &RedisDB{
		client:            redis.NewClient(&redis.Options{Addr: addr}),
		key:               key,
		connectionTimeout: connectionTimeout,
	}

	if err := result.Ping(ctx); err != nil {
		_ = result.client.Close()
		return nil,
			fmt.Errorf(
				"in internal/db/redisdb/redisdb.go/New(): error while `result.Ping()` calling: %w",
				err,
			)
	}

	return result, nil
}

func (db *RedisDB) ReadAll(ctx context.Context) []models.User {
	document, err := db.client.Get(ctx, db.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Errorw("Error reading users collection", "key", db.key, zap.Error(err))
		}
		return []models.User{}
	}

	users := []models.User{}
	if err := json.Unmarshal(document, &users); err != nil {
		logger.Log.Errorw("Error decoding users collection", "key", db.key, zap.Error(err))
		return []models.User{}
	}
	if users == nil {
		return []models.User{}
	}

	return users
}

func (db *RedisDB) WriteAll(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}

	document, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrPersistence, err)
	}

	if err := db.client.Set(ctx, db.key, document, 0).Err(); err != nil {
		logger.Log.Errorw("Error writing users collection", "key", db.key, zap.Error(err))
		return fmt.Errorf("%w: %w", storage.ErrPersistence, err)
	}

	return nil
}

func (db *RedisDB) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, db.connectionTimeout)
	defer cancel()

	return db.client.Ping(ctxWithTimeout).Err()
}

func (db *RedisDB) Close() error {
	return db.client.Close()
}
