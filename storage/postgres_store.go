package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"demand-forecaster/models"
	"demand-forecaster/utils"

	_ "github.com/lib/pq"
)

const (
	FutureTable     = "future_predictions"
	HistoricalTable = "historical_predictions"
)

// PostgresStore keeps prediction documents as JSONB rows in PostgreSQL
type PostgresStore struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresStore opens the connection and pings the DB
func NewPostgresStore(ctx context.Context, connStr string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open DB: %v", models.ErrStoreConnection, err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to ping DB: %v", models.ErrStoreConnection, err)
	}

	logger.Info("Connected to document store successfully")
	return NewPostgresStoreWithDB(db, logger), nil
}

// NewPostgresStoreWithDB wraps an already open database
func NewPostgresStoreWithDB(db *sql.DB, logger *utils.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// CreateTables creates both collections if they don't exist, with date indexes
func (s *PostgresStore) CreateTables(ctx context.Context) error {
	for _, table := range []string{FutureTable, HistoricalTable} {
		query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id          SERIAL PRIMARY KEY,
			run_id      UUID      NOT NULL,
			record_date DATE      NOT NULL,
			record_time TEXT      NOT NULL,
			hour        SMALLINT  NOT NULL,
			doc         JSONB     NOT NULL,
			created_at  TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_%[1]s_date ON %[1]s (record_date);
		`, table)
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("%w: failed to create table %s: %v", models.ErrStoreConnection, table, err)
		}
	}
	s.logger.Info("Tables '%s' and '%s' are ready", FutureTable, HistoricalTable)
	return nil
}

// ReplaceFuture deletes every future prediction and inserts docs, in one
// transaction, so the collection only ever holds the latest run
func (s *PostgresStore) ReplaceFuture(ctx context.Context, docs []StoredDocument) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM "+FutureTable)
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", FutureTable, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			s.logger.Debug("Removed %d previous future predictions", n)
		}
		if err := insertDocs(ctx, tx, FutureTable, docs); err != nil {
			return err
		}
		s.logger.Info("Replaced %s with %d documents", FutureTable, len(docs))
		return nil
	})
}

// InsertHistorical appends docs to the history. Duplicates across runs are
// removed by a separate process.
func (s *PostgresStore) InsertHistorical(ctx context.Context, docs []StoredDocument) error {
	if len(docs) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertDocs(ctx, tx, HistoricalTable, docs); err != nil {
			return err
		}
		s.logger.Info("Inserted %d documents into %s", len(docs), HistoricalTable)
		return nil
	})
}

func (s *PostgresStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", models.ErrStoreWrite, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreWrite, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", models.ErrStoreWrite, err)
	}
	return nil
}

func insertDocs(ctx context.Context, tx *sql.Tx, table string, docs []StoredDocument) error {
	if len(docs) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (run_id, record_date, record_time, hour, doc) VALUES ($1, $2, $3, $4, $5)`, table))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, d := range docs {
		body, err := json.Marshal(d.Body)
		if err != nil {
			return fmt.Errorf("failed to encode document %s %s: %w", d.Body.Date, d.Time, err)
		}
		if _, err := stmt.ExecContext(ctx, d.RunID.String(), d.Date, d.Time, d.Hour, string(body)); err != nil {
			return fmt.Errorf("failed to insert document %s %s: %w", d.Body.Date, d.Time, err)
		}
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
