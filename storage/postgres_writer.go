package storage

import (
	"database/sql"
	"fmt"
	"time"

	"campscan/models"
	"campscan/utils"

	_ "github.com/lib/pq"
)

// PostgresWriter archives exported availability rows in PostgreSQL. It is
// an export sink like the CSV writer; scans never read it back.
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter creates a new PostgresWriter and pings the DB
func NewPostgresWriter(connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return &PostgresWriter{db: db, logger: logger}, nil
}

// CreateTable creates the availability table if it doesn't exist
func (w *PostgresWriter) CreateTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS availability (
		id         SERIAL PRIMARY KEY,
		campground TEXT         NOT NULL,
		site       TEXT         NOT NULL,
		arrival    DATE,
		departure  DATE,
		price      NUMERIC(10,2),
		currency   VARCHAR(8),
		status     VARCHAR(16)  NOT NULL,
		raw_text   TEXT,
		scanned_at TIMESTAMP    NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_availability_campground ON availability (campground);
	CREATE INDEX IF NOT EXISTS idx_availability_status     ON availability (status);
	CREATE INDEX IF NOT EXISTS idx_availability_arrival    ON availability (arrival);
	`
	_, err := w.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	w.logger.Info("Table 'availability' is ready")
	return nil
}

// WriteRecords inserts records in a single transaction
func (w *PostgresWriter) WriteRecords(records []*models.AvailabilityRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO availability (campground, site, arrival, departure, price, currency, status, raw_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range records {
		_, err = stmt.Exec(
			r.Campground,
			r.Site,
			nullDate(r.Arrival),
			nullDate(r.Departure),
			nullPrice(r.Price),
			nullString(r.Currency),
			string(r.Status),
			r.RawText,
		)
		if err != nil {
			w.logger.Warn("Skipping insert for site '%s': %v", r.Site, err)
			continue
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.logger.Info("Archived %d/%d records in PostgreSQL", inserted, len(records))
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() {
	if w.db != nil {
		_ = w.db.Close()
	}
}

func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func nullPrice(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
