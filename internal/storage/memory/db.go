package memory

import (
	"context"
	"sync"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/logger"
)

type Config struct {
	L *logger.Logger
}

// DB keeps the booking list in process memory, in append order.
type DB struct {
	mu              sync.Mutex
	l               *logger.Logger
	records         []*booking.Record
	idempotencyKeys map[string]int
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:               conf.L,
		idempotencyKeys: make(map[string]int),
	}
}

func (db *DB) Append(ctx context.Context, record *booking.Record) error {
	if record == nil {
		return ErrNilRecord
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	key, hasKey := booking.IdempotencyKeyFromContext(ctx)
	if hasKey {
		if _, exists := db.idempotencyKeys[key]; exists {
			return booking.ErrDuplicateSubmission
		}

		db.idempotencyKeys[key] = len(db.records)
	}

	db.records = append(db.records, record.Clone())

	return nil
}

func (db *DB) List(_ context.Context) ([]*booking.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]*booking.Record, 0, len(db.records))
	for _, record := range db.records {
		out = append(out, record.Clone())
	}

	return out, nil
}

func (db *DB) FindByIdempotencyKey(_ context.Context, key string) (*booking.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx, exists := db.idempotencyKeys[key]
	if !exists {
		return nil, booking.ErrRecordNotFound
	}

	return db.records[idx].Clone(), nil
}

func (db *DB) Close() error {
	return nil
}
