package migration

import (
	"context"
	"strings"
	"testing"

	"github.com/avstrong/zenith/internal/logger"
	"github.com/avstrong/zenith/internal/storage/memory"
)

const export = `[
  {
    "serviceType": "deep",
    "serviceName": "Deep Cleaning",
    "date": "2025-03-14",
    "time": "10:00 AM",
    "duration": "4-6 hours",
    "rooms": "1",
    "name": "Avery Martin",
    "email": "avery@example.com",
    "phone": "555-0100",
    "address": "123 Main St",
    "basePrice": 150,
    "additionalRooms": 0,
    "subtotal": 150,
    "tax": 19.5,
    "total": 169.5,
    "specialInstructions": "",
    "bookingId": "ZC-2025-0042",
    "timestamp": "2025-03-01T15:04:05.000Z",
    "features": ["Everything in regular cleaning"]
  },
  {
    "serviceType": "regular",
    "serviceName": "Regular Cleaning",
    "date": "2025-03-20",
    "time": "1:00 PM",
    "duration": "2-3 hours",
    "rooms": "5+",
    "name": "Sam Lee",
    "email": "sam@example.com",
    "phone": "555-0101",
    "address": "9 Queen St",
    "basePrice": 80,
    "additionalRooms": 60,
    "subtotal": 140,
    "tax": 18.2,
    "total": 158.2,
    "specialInstructions": "Cat in the house",
    "bookingId": "ZC-2025-0042",
    "timestamp": "2025-03-02T09:00:00.000Z"
  }
]`

func TestImport(t *testing.T) {
	store := memory.New(memory.Config{L: logger.NewNop()})
	ctx := context.Background()

	n, err := Import(ctx, logger.NewNop(), store, strings.NewReader(export))
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}

	records, _ := store.List(ctx)

	second := records[1]
	if second.Rooms != 5 || second.AdditionalRoomsPrice != 60 || second.Instructions != "Cat in the house" {
		t.Errorf("unexpected record %+v", second)
	}

	if second.Features == nil {
		t.Error("missing features must become an empty list")
	}

	if records[0].CreatedAt.Year() != 2025 || records[0].TaxAmount != 19.5 {
		t.Errorf("unexpected record %+v", records[0])
	}
}

func TestImportTwiceAddsNothing(t *testing.T) {
	store := memory.New(memory.Config{L: logger.NewNop()})
	ctx := context.Background()

	if _, err := Import(ctx, logger.NewNop(), store, strings.NewReader(export)); err != nil {
		t.Fatal(err)
	}

	n, err := Import(ctx, logger.NewNop(), store, strings.NewReader(export))
	if err != nil {
		t.Fatal(err)
	}

	records, _ := store.List(ctx)
	if n != 0 || len(records) != 2 {
		t.Fatalf("reimport added records: n=%d total=%d", n, len(records))
	}
}

func TestImportRejectsBadTimestamp(t *testing.T) {
	store := memory.New(memory.Config{L: logger.NewNop()})

	_, err := Import(context.Background(), logger.NewNop(), store,
		strings.NewReader(`[{"bookingId":"ZC-2025-0001","timestamp":"yesterday"}]`))
	if err == nil {
		t.Fatal("expected timestamp error")
	}
}
