package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/logger"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(Config{L: logger.NewNop(), Path: filepath.Join(t.TempDir(), "nested", "bookings.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	return db
}

func sampleRecord(id string) *booking.Record {
	return &booking.Record{
		BookingID:            id,
		CreatedAt:            time.Date(2026, 10, 15, 14, 30, 0, 123, time.UTC),
		ServiceID:            "regular",
		ServiceName:          "Regular Cleaning",
		Date:                 "2026-10-20",
		Time:                 "9:00 AM",
		Duration:             "2-3 hours",
		Rooms:                3,
		Name:                 "Sam Lee",
		Email:                "sam@example.com",
		Phone:                "555-0101",
		Address:              "1 King St W, Toronto",
		BasePrice:            80,
		AdditionalRoomsPrice: 30,
		Subtotal:             110,
		TaxAmount:            14.3,
		Total:                124.3,
		Features:             []string{"Dusting all surfaces", "Trash removal"},
	}
}

func TestAppendListRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := sampleRecord("ZC-2026-0420")
	second := sampleRecord("ZC-2026-0420")
	second.Instructions = "Ring twice"

	for _, r := range []*booking.Record{first, second} {
		if err := db.Append(ctx, r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	records, err := db.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("colliding ids must both be kept, got %d", len(records))
	}

	got := records[0]
	if !got.CreatedAt.Equal(first.CreatedAt) || got.Total != first.Total || got.Rooms != 3 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if len(got.Features) != 2 || got.Features[1] != "Trash removal" {
		t.Errorf("features mismatch: %v", got.Features)
	}

	if records[1].Instructions != "Ring twice" {
		t.Errorf("insertion order not preserved: %+v", records[1])
	}
}

func TestAppendDuplicateIdempotencyKey(t *testing.T) {
	db := openTestDB(t)
	ctx := booking.NewContextWithIdempotencyKey(context.Background(), "abc")

	if err := db.Append(ctx, sampleRecord("ZC-2026-0001")); err != nil {
		t.Fatal(err)
	}

	if err := db.Append(ctx, sampleRecord("ZC-2026-0002")); !errors.Is(err, booking.ErrDuplicateSubmission) {
		t.Fatalf("expected duplicate submission, got %v", err)
	}

	found, err := db.FindByIdempotencyKey(ctx, "abc")
	if err != nil || found.BookingID != "ZC-2026-0001" {
		t.Fatalf("unexpected lookup %+v, %v", found, err)
	}

	if _, err := db.FindByIdempotencyKey(ctx, "missing"); !errors.Is(err, booking.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.db")
	ctx := context.Background()

	db, err := Open(Config{L: logger.NewNop(), Path: path})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.Append(ctx, sampleRecord("ZC-2026-0003")); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	db, err = Open(Config{L: logger.NewNop(), Path: path})
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	records, err := db.List(ctx)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected persisted record, got %d, %v", len(records), err)
	}
}
