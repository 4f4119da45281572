package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/logger"
)

const maxAppendRetries = 10

var ErrTooManyRetries = errors.New("booking list changed concurrently too many times")

type Config struct {
	L        *logger.Logger
	Addr     string
	Password string
	DB       int
	// Key holds the JSON array of bookings. Idempotency keys live in the
	// hash "<Key>:idempotency", mapping each key to an array index.
	Key string
}

// DB stores the whole booking list as one JSON array under a single key,
// the same shape the browser kept in local storage.
type DB struct {
	l       *logger.Logger
	client  *redis.Client
	key     string
	idemKey string
}

func New(conf Config) (*DB, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("connect to redis at %s: %w", conf.Addr, err)
	}

	return NewWithClient(conf.L, client, conf.Key), nil
}

func NewWithClient(l *logger.Logger, client *redis.Client, key string) *DB {
	return &DB{
		l:       l,
		client:  client,
		key:     key,
		idemKey: key + ":idempotency",
	}
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (d *DB) load(ctx context.Context, g getter) ([]*booking.Record, error) {
	data, err := g.Get(ctx, d.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []*booking.Record{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.key, err)
	}

	var records []*booking.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.key, err)
	}

	if records == nil {
		records = []*booking.Record{}
	}

	return records, nil
}

// Append rewrites the array inside a WATCH transaction so concurrent writers
// never drop each other's bookings.
func (d *DB) Append(ctx context.Context, record *booking.Record) error {
	key, hasKey := booking.IdempotencyKeyFromContext(ctx)

	txf := func(tx *redis.Tx) error {
		if hasKey {
			exists, err := tx.HExists(ctx, d.idemKey, key).Result()
			if err != nil {
				return fmt.Errorf("check idempotency key: %w", err)
			}

			if exists {
				return booking.ErrDuplicateSubmission
			}
		}

		records, err := d.load(ctx, tx)
		if err != nil {
			return err
		}

		records = append(records, record)

		data, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("encode bookings: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, d.key, data, 0)
			if hasKey {
				pipe.HSet(ctx, d.idemKey, key, len(records)-1)
			}

			return nil
		})

		return err
	}

	for i := 0; i < maxAppendRetries; i++ {
		err := d.client.Watch(ctx, txf, d.key, d.idemKey)
		if errors.Is(err, redis.TxFailedErr) {
			d.l.LogWarn("Booking list changed during append, retrying")

			continue
		}

		return err
	}

	return ErrTooManyRetries
}

func (d *DB) List(ctx context.Context) ([]*booking.Record, error) {
	return d.load(ctx, d.client)
}

func (d *DB) FindByIdempotencyKey(ctx context.Context, key string) (*booking.Record, error) {
	raw, err := d.client.HGet(ctx, d.idemKey, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, booking.ErrRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("read idempotency key: %w", err)
	}

	idx, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("parse idempotency index %q: %w", raw, err)
	}

	records, err := d.load(ctx, d.client)
	if err != nil {
		return nil, err
	}

	if idx < 0 || idx >= len(records) {
		return nil, booking.ErrRecordNotFound
	}

	return records[idx], nil
}

func (d *DB) Close() error {
	return d.client.Close()
}
