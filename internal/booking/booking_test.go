package booking_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/catalog"
	"github.com/avstrong/zenith/internal/idgen"
	"github.com/avstrong/zenith/internal/idgen/random"
	"github.com/avstrong/zenith/internal/idgen/simple"
	"github.com/avstrong/zenith/internal/logger"
	"github.com/avstrong/zenith/internal/quote"
	"github.com/avstrong/zenith/internal/storage/memory"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, r *booking.Record) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, r.BookingID)

	return n.err
}

type failingGenerator struct{}

func (failingGenerator) GetID(context.Context) (string, error) {
	return "", errors.New("entropy exhausted")
}

func newManager(t *testing.T, notifier *recordingNotifier) (*booking.Manager, *memory.DB) {
	t.Helper()

	c := catalog.New()
	store := memory.New(memory.Config{L: logger.NewNop()})

	conf := booking.Config{
		L:           logger.NewNop(),
		Storage:     store,
		IDGenerator: random.New(),
		Catalog:     c,
		Quotes:      quote.New(c),
	}
	if notifier != nil {
		conf.Notifier = notifier
	}

	return booking.New(conf), store
}

func validInput() *booking.BookInput {
	return &booking.BookInput{
		ServiceID:    "deep",
		Date:         "2026-11-02",
		Time:         "10:00 AM",
		Rooms:        "1",
		Name:         "Avery Martin",
		Email:        "avery@example.com",
		Phone:        "+1 (555) 123-4567",
		Address:      "123 Main St, Toronto, ON",
		Instructions: "Spare key under the mat",
	}
}

func TestSubmitAppendsToEmptyList(t *testing.T) {
	m, store := newManager(t, nil)
	ctx := context.Background()

	before := time.Now().UTC()

	record, err := m.Submit(ctx, validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	records, _ := store.List(ctx)
	if len(records) != 1 {
		t.Fatalf("expected one stored record, got %d", len(records))
	}

	stored := records[0]

	if !idgen.Valid(stored.BookingID) || stored.BookingID != record.BookingID {
		t.Errorf("unexpected booking id %q", stored.BookingID)
	}

	if stored.CreatedAt.Before(before) || stored.CreatedAt.After(time.Now().UTC()) {
		t.Errorf("createdAt %v outside submission window", stored.CreatedAt)
	}

	if stored.ServiceID != "deep" || stored.ServiceName != "Deep Cleaning" || stored.Duration != "4-6 hours" {
		t.Errorf("service fields not copied: %+v", stored)
	}

	if stored.Name != "Avery Martin" || stored.Email != "avery@example.com" || stored.Phone != "+1 (555) 123-4567" ||
		stored.Address != "123 Main St, Toronto, ON" || stored.Instructions != "Spare key under the mat" {
		t.Errorf("contact fields not copied: %+v", stored)
	}

	if stored.Date != "2026-11-02" || stored.Time != "10:00 AM" || stored.Rooms != 1 {
		t.Errorf("schedule fields not copied: %+v", stored)
	}

	if math.Abs(stored.Subtotal-150) > 1e-9 || math.Abs(stored.TaxAmount-19.5) > 1e-9 || math.Abs(stored.Total-169.5) > 1e-9 {
		t.Errorf("unexpected pricing %+v", stored)
	}

	if len(stored.Features) != 8 || stored.Features[0] != "Everything in regular cleaning" {
		t.Errorf("features not copied: %v", stored.Features)
	}
}

func TestSubmitCopiesFeatures(t *testing.T) {
	m, _ := newManager(t, nil)

	record, err := m.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}

	record.Features[0] = "changed"

	service, _ := catalog.New().LookupService("deep")
	if service.Features[0] != "Everything in regular cleaning" {
		t.Fatal("catalog features changed through the record")
	}
}

func TestSubmitUsesCatalogRoomPrice(t *testing.T) {
	m, _ := newManager(t, nil)

	input := validInput()
	input.ServiceID = "regular"
	input.Rooms = "3"

	record, err := m.Submit(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}

	if record.AdditionalRoomsPrice != 30 || record.Subtotal != 110 {
		t.Fatalf("unexpected pricing %+v", record)
	}

	if math.Abs(record.Total-110*1.13) > 1e-9 {
		t.Fatalf("booking flow must not discount, total %v", record.Total)
	}
}

func TestSubmitUnknownServiceStillSucceeds(t *testing.T) {
	m, _ := newManager(t, nil)

	input := validInput()
	input.ServiceID = "pool"

	record, err := m.Submit(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}

	if record.Total != 0 || record.ServiceName != "" || len(record.Features) != 0 {
		t.Fatalf("expected zero-priced record, got %+v", record)
	}
}

func TestSubmitValidation(t *testing.T) {
	m, store := newManager(t, nil)

	input := validInput()
	input.Name = "   "
	input.Email = "not-an-email"
	input.Rooms = ""

	_, err := m.Submit(context.Background(), input)

	inputErr := booking.IsInputError(err)
	if inputErr == nil {
		t.Fatalf("expected input error, got %v", err)
	}

	fields := inputErr.Fields()
	for _, field := range []string{"name", "email", "rooms"} {
		if len(fields[field]) == 0 {
			t.Errorf("expected error for %s, got %v", field, fields)
		}
	}

	if _, ok := fields["instructions"]; ok {
		t.Error("instructions are optional")
	}

	records, _ := store.List(context.Background())
	if len(records) != 0 {
		t.Fatalf("no record may be stored after validation failure, got %d", len(records))
	}
}

func TestSubmitIdempotencyKey(t *testing.T) {
	notifier := &recordingNotifier{}
	m, store := newManager(t, notifier)
	ctx := booking.NewContextWithIdempotencyKey(context.Background(), "form-7")

	first, err := m.Submit(ctx, validInput())
	if err != nil {
		t.Fatal(err)
	}

	second, err := m.Submit(ctx, validInput())
	if err != nil {
		t.Fatal(err)
	}

	if first.BookingID != second.BookingID {
		t.Fatalf("expected same booking, got %s and %s", first.BookingID, second.BookingID)
	}

	records, _ := store.List(context.Background())
	if len(records) != 1 {
		t.Fatalf("expected single stored record, got %d", len(records))
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected one confirmation, got %d", len(notifier.sent))
	}
}

func TestSubmitNotifierFailureDoesNotFail(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	m, _ := newManager(t, notifier)

	if _, err := m.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("notifier failure must not fail the booking: %v", err)
	}
}

func TestSubmitCancelledDuringDelay(t *testing.T) {
	c := catalog.New()
	store := memory.New(memory.Config{L: logger.NewNop()})
	m := booking.New(booking.Config{
		L:           logger.NewNop(),
		Storage:     store,
		IDGenerator: simple.New(),
		Catalog:     c,
		Quotes:      quote.New(c),
		SubmitDelay: time.Hour,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := m.Submit(ctx, validInput()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	records, _ := store.List(context.Background())
	if len(records) != 0 {
		t.Fatalf("expected no record, got %d", len(records))
	}
}

func TestSubmitIDGeneratorFailure(t *testing.T) {
	c := catalog.New()
	m := booking.New(booking.Config{
		L:           logger.NewNop(),
		Storage:     memory.New(memory.Config{L: logger.NewNop()}),
		IDGenerator: failingGenerator{},
		Catalog:     c,
		Quotes:      quote.New(c),
	})

	if _, err := m.Submit(context.Background(), validInput()); !errors.Is(err, booking.ErrNextID) {
		t.Fatalf("expected ErrNextID, got %v", err)
	}
}

func TestGetReturnsLatestMatch(t *testing.T) {
	c := catalog.New()
	store := memory.New(memory.Config{L: logger.NewNop()})
	m := booking.New(booking.Config{
		L:           logger.NewNop(),
		Storage:     store,
		IDGenerator: simple.New(),
		Catalog:     c,
		Quotes:      quote.New(c),
	})
	ctx := context.Background()

	record, err := m.Submit(ctx, validInput())
	if err != nil {
		t.Fatal(err)
	}

	got, err := m.Get(ctx, record.BookingID)
	if err != nil || got.BookingID != record.BookingID {
		t.Fatalf("unexpected get %+v, %v", got, err)
	}

	if _, err := m.Get(ctx, "ZC-1999-0000"); !errors.Is(err, booking.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
