package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/logger"
)

// These tests need a running server; set ZENITH_TEST_REDIS_ADDR to run them.
func openTestDB(t *testing.T) *DB {
	t.Helper()

	addr := os.Getenv("ZENITH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ZENITH_TEST_REDIS_ADDR not set")
	}

	db, err := New(Config{L: logger.NewNop(), Addr: addr, Key: "zenith-test-" + uuid.NewString()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	t.Cleanup(func() {
		_ = db.client.Del(context.Background(), db.key, db.idemKey).Err()
		_ = db.Close()
	})

	return db
}

func TestAppendAndList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	records, err := db.List(ctx)
	if err != nil || len(records) != 0 {
		t.Fatalf("expected empty list, got %d, %v", len(records), err)
	}

	for _, id := range []string{"ZC-2026-0001", "ZC-2026-0001", "ZC-2026-0002"} {
		err := db.Append(ctx, &booking.Record{BookingID: id, CreatedAt: time.Now().UTC(), Features: []string{}})
		if err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	records, err = db.List(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 3 || records[2].BookingID != "ZC-2026-0002" {
		t.Fatalf("unexpected list %+v", records)
	}
}

func TestAppendDuplicateIdempotencyKey(t *testing.T) {
	db := openTestDB(t)
	ctx := booking.NewContextWithIdempotencyKey(context.Background(), "retry-1")

	if err := db.Append(ctx, &booking.Record{BookingID: "ZC-2026-0100"}); err != nil {
		t.Fatal(err)
	}

	if err := db.Append(ctx, &booking.Record{BookingID: "ZC-2026-0101"}); !errors.Is(err, booking.ErrDuplicateSubmission) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	found, err := db.FindByIdempotencyKey(ctx, "retry-1")
	if err != nil || found.BookingID != "ZC-2026-0100" {
		t.Fatalf("unexpected lookup %+v, %v", found, err)
	}
}
