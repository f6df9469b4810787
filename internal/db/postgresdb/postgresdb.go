// Package postgresdb provides a PostgreSQL-based implementation of the storage
// interface. The users collection lives in a single jsonb row so that reads
// and writes keep the whole-document semantics of the file storage.
package postgresdb

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/userdir/internal/db/storage"
	"github.com/patric-chuzhbe/userdir/internal/logger"
	"github.com/patric-chuzhbe/userdir/internal/models"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// PostgresDB is a PostgreSQL-backed users collection.
type PostgresDB struct {
	database          *sql.DB
	connectionTimeout time.Duration
}

type initOptions struct {
	DBPreReset bool
}

// InitOption defines a functional option for configuring database initialization.
type InitOption func(*initOptions)

// WithDBPreReset drops the collection table before migrating. Meant for tests.
func WithDBPreReset(value bool) InitOption {
	return func(options *initOptions) {
		options.DBPreReset = value
	}
}

// New connects to the database, applies the embedded migrations and returns
// a ready PostgresDB.
func New(
	ctx context.Context,
	databaseDSN string,
	connectionTimeout time.Duration,
	optionsProto ...InitOption,
) (*PostgresDB, error) {
	options := &initOptions{
		DBPreReset: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	database, err := sql.Open("pgx", databaseDSN)
	if err != nil {
		return nil, err
	}

	result := &PostgresDB{
		database:          database,
		connectionTimeout: connectionTimeout,
	}

	if err := result.Ping(ctx); err != nil {
		_ = database.Close()
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `result.Ping()` calling: %w",
				err,
			)
	}

	if options.DBPreReset {
		if err := result.resetDB(ctx); err != nil {
			_ = database.Close()
			return nil, err
		}
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		_ = database.Close()
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `goose.SetDialect()` calling: %w",
				err,
			)
	}

	if err := goose.UpContext(ctx, result.database, "migrations"); err != nil {
		_ = database.Close()
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `goose.UpContext()` calling: %w",
				err,
			)
	}

	return result, nil
}

// ReadAll loads the collection row. A missing row or an unreadable document
// is logged and reported as an empty collection.
func (db *PostgresDB) ReadAll(ctx context.Context) []models.User {
	row := db.database.QueryRowContext(
		ctx,
		`SELECT document FROM users_collection WHERE id = 1`,
	)

	var document []byte
	if err := row.Scan(&document); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Log.Errorw("Error reading users collection", zap.Error(err))
		}
		return []models.User{}
	}

	users := []models.User{}
	if err := json.Unmarshal(document, &users); err != nil || users == nil {
		if err != nil {
			logger.Log.Errorw("Error decoding users collection", zap.Error(err))
		}
		return []models.User{}
	}

	return users
}

// WriteAll upserts the collection row.
func (db *PostgresDB) WriteAll(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}

	document, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrPersistence, err)
	}

	_, err = db.database.ExecContext(
		ctx,
		`
			INSERT INTO users_collection (id, document, updated_at)
				VALUES (1, $1, now())
				ON CONFLICT (id) DO UPDATE
				SET
					document = EXCLUDED.document,
					updated_at = EXCLUDED.updated_at;
		`,
		document,
	)
	if err != nil {
		logger.Log.Errorw("Error writing users collection", zap.Error(err))
		return fmt.Errorf("%w: %w", storage.ErrPersistence, err)
	}

	return nil
}

// Ping verifies connectivity with the PostgreSQL database within the configured timeout.
func (db *PostgresDB) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, db.connectionTimeout)
	defer cancel()

	return db.database.PingContext(ctxWithTimeout)
}

// Close closes the database connection and releases any associated resources.
func (db *PostgresDB) Close() error {
	return db.database.Close()
}

func (db *PostgresDB) resetDB(ctx context.Context) error {
	for _, table := range []string{"users_collection", "goose_db_version"} {
		_, err := db.database.ExecContext(ctx, `DROP TABLE IF EXISTS `+table)
		if err != nil {
			return fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/resetDB(): error while `db.database.ExecContext()` calling: %w",
				err,
			)
		}
	}
	return nil
}
