package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/logger"
)

type Config struct {
	L    *logger.Logger
	Path string
}

// DB persists the booking list in a local SQLite file. Rows are read back
// in insertion order; booking ids are not a key because they may collide.
type DB struct {
	l  *logger.Logger
	db *sql.DB
}

func Open(conf Config) (*DB, error) {
	if dir := filepath.Dir(conf.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create bookings dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", conf.Path)
	if err != nil {
		return nil, err
	}

	if err := ensureBookingsSchema(db); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &DB{l: conf.L, db: db}, nil
}

func ensureBookingsSchema(db *sql.DB) error {
	createTable := `
CREATE TABLE IF NOT EXISTS bookings (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  booking_id TEXT NOT NULL,
  created_at TEXT NOT NULL,
  service_id TEXT,
  service_name TEXT,
  date TEXT,
  time TEXT,
  duration TEXT,
  rooms INTEGER,
  name TEXT,
  email TEXT,
  phone TEXT,
  address TEXT,
  instructions TEXT,
  base_price REAL,
  additional_rooms_price REAL,
  subtotal REAL,
  tax_amount REAL,
  total REAL,
  features TEXT
);`

	if _, err := db.Exec(createTable); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}

	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_booking_id ON bookings(booking_id);"); err != nil {
		return fmt.Errorf("create bookings index: %w", err)
	}

	if err := ensureBookingsColumns(db, []string{"idempotency_key"}); err != nil {
		return err
	}

	_, err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_idempotency_key
ON bookings(idempotency_key) WHERE idempotency_key IS NOT NULL;`)
	if err != nil {
		return fmt.Errorf("create idempotency index: %w", err)
	}

	return nil
}

func ensureBookingsColumns(db *sql.DB, columns []string) error {
	rows, err := db.Query("PRAGMA table_info(bookings);")
	if err != nil {
		return fmt.Errorf("inspect bookings table: %w", err)
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return fmt.Errorf("inspect bookings columns: %w", err)
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect bookings columns: %w", err)
	}

	for _, column := range columns {
		if _, ok := existing[column]; ok {
			continue
		}
		_, err := db.Exec(fmt.Sprintf("ALTER TABLE bookings ADD COLUMN %s TEXT;", column))
		if err != nil {
			return fmt.Errorf("add bookings column %s: %w", column, err)
		}
	}
	return nil
}

const selectColumns = `
SELECT booking_id, created_at, service_id, service_name, date, time, duration, rooms,
  name, email, phone, address, instructions,
  base_price, additional_rooms_price, subtotal, tax_amount, total, features
FROM bookings`

func (d *DB) Append(ctx context.Context, record *booking.Record) error {
	features, err := json.Marshal(record.Features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}

	var key sql.NullString
	if k, ok := booking.IdempotencyKeyFromContext(ctx); ok {
		key = sql.NullString{String: k, Valid: true}
	}

	query := `
INSERT INTO bookings (
  booking_id, created_at, service_id, service_name, date, time, duration, rooms,
  name, email, phone, address, instructions,
  base_price, additional_rooms_price, subtotal, tax_amount, total, features, idempotency_key
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	_, err = d.db.ExecContext(
		ctx,
		query,
		record.BookingID,
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
		record.ServiceID,
		record.ServiceName,
		record.Date,
		record.Time,
		record.Duration,
		record.Rooms,
		record.Name,
		record.Email,
		record.Phone,
		record.Address,
		record.Instructions,
		record.BasePrice,
		record.AdditionalRoomsPrice,
		record.Subtotal,
		record.TaxAmount,
		record.Total,
		string(features),
		key,
	)

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return booking.ErrDuplicateSubmission
	}

	return err
}

func (d *DB) List(ctx context.Context) ([]*booking.Record, error) {
	rows, err := d.db.QueryContext(ctx, selectColumns+" ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*booking.Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (d *DB) FindByIdempotencyKey(ctx context.Context, key string) (*booking.Record, error) {
	row := d.db.QueryRowContext(ctx, selectColumns+" WHERE idempotency_key = ?", key)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrRecordNotFound
	}

	return record, err
}

func (d *DB) Close() error {
	return d.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*booking.Record, error) {
	var record booking.Record
	var createdAt string
	var features sql.NullString
	var instructions sql.NullString

	if err := s.Scan(
		&record.BookingID,
		&createdAt,
		&record.ServiceID,
		&record.ServiceName,
		&record.Date,
		&record.Time,
		&record.Duration,
		&record.Rooms,
		&record.Name,
		&record.Email,
		&record.Phone,
		&record.Address,
		&instructions,
		&record.BasePrice,
		&record.AdditionalRoomsPrice,
		&record.Subtotal,
		&record.TaxAmount,
		&record.Total,
		&features,
	); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of %s: %w", record.BookingID, err)
	}
	record.CreatedAt = parsed

	if instructions.Valid {
		record.Instructions = instructions.String
	}

	record.Features = []string{}
	if features.Valid && features.String != "" {
		if err := json.Unmarshal([]byte(features.String), &record.Features); err != nil {
			return nil, fmt.Errorf("decode features of %s: %w", record.BookingID, err)
		}
	}

	return &record, nil
}
