package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/avstrong/zenith/internal/catalog"
	"github.com/avstrong/zenith/internal/logger"
	"github.com/avstrong/zenith/internal/quote"
	"github.com/avstrong/zenith/internal/simulate"
)

type idGenerator interface {
	GetID(ctx context.Context) (string, error)
}

type storageReader interface {
	List(ctx context.Context) ([]*Record, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*Record, error)
}

// storageWriter.Append reads the idempotency key from ctx and returns
// ErrDuplicateSubmission when a record already holds it.
type storageWriter interface {
	Append(ctx context.Context, record *Record) error
}

type storage interface {
	storageReader
	storageWriter
}

type catalogReader interface {
	LookupService(id string) (catalog.Service, bool)
}

type quoter interface {
	ForBooking(serviceID, rooms string) quote.Breakdown
}

type notifier interface {
	BookingConfirmed(ctx context.Context, record *Record) error
}

type Config struct {
	L           *logger.Logger
	Storage     storage
	IDGenerator idGenerator
	Catalog     catalogReader
	Quotes      quoter
	Notifier    notifier
	SubmitDelay time.Duration
}

type Manager struct {
	l           *logger.Logger
	storage     storage
	idGenerator idGenerator
	catalog     catalogReader
	quotes      quoter
	notifier    notifier
	validate    *validator.Validate
	delay       time.Duration
	now         func() time.Time
}

func New(conf Config) *Manager {
	return &Manager{
		l:           conf.L,
		storage:     conf.Storage,
		idGenerator: conf.IDGenerator,
		catalog:     conf.Catalog,
		quotes:      conf.Quotes,
		notifier:    conf.Notifier,
		validate:    NewValidator(),
		delay:       conf.SubmitDelay,
		now:         time.Now,
	}
}

func (m *Manager) validateInput(input *BookInput) error {
	input.trim()

	if err := m.validate.Struct(input); err != nil {
		return ToInputError(err)
	}

	return nil
}

func (m *Manager) buildRecord(ctx context.Context, input *BookInput) (*Record, error) {
	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNextID, err)
	}

	pricing := m.quotes.ForBooking(input.ServiceID, input.Rooms)

	record := &Record{
		BookingID:            id,
		CreatedAt:            m.now().UTC(),
		ServiceID:            input.ServiceID,
		Date:                 input.Date,
		Time:                 input.Time,
		Rooms:                quote.ParseRooms(input.Rooms),
		Name:                 input.Name,
		Email:                input.Email,
		Phone:                input.Phone,
		Address:              input.Address,
		Instructions:         input.Instructions,
		BasePrice:            pricing.BasePrice,
		AdditionalRoomsPrice: pricing.AdditionalRoomsPrice,
		Subtotal:             pricing.Subtotal,
		TaxAmount:            pricing.TaxAmount,
		Total:                pricing.Total,
		Features:             []string{},
	}

	if service, ok := m.catalog.LookupService(input.ServiceID); ok {
		record.ServiceName = service.Name
		record.Duration = service.Duration
		record.Features = service.Features
	}

	return record, nil
}

func (m *Manager) findByIdempotencyKey(ctx context.Context) (*Record, error) {
	key, ok := IdempotencyKeyFromContext(ctx)
	if !ok {
		return nil, ErrRecordNotFound
	}

	record, err := m.storage.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("find booking by idempotency key: %w", err)
	}

	return record, nil
}

// Submit validates the form, waits out the simulated submission, prices the
// booking and appends the resulting record. A repeated submission carrying
// the same idempotency key returns the first record.
func (m *Manager) Submit(ctx context.Context, input *BookInput) (*Record, error) {
	if err := m.validateInput(input); err != nil {
		return nil, err
	}

	existing, err := m.findByIdempotencyKey(ctx)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}

	if err := simulate.Remote(ctx, m.delay); err != nil {
		return nil, fmt.Errorf("submit booking: %w", err)
	}

	record, err := m.buildRecord(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("build record: %w", err)
	}

	if err := m.storage.Append(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicateSubmission) {
			return m.findByIdempotencyKey(ctx)
		}

		return nil, fmt.Errorf("append booking to storage: %w", err)
	}

	m.logConfirmation(record)

	if m.notifier != nil {
		if err := m.notifier.BookingConfirmed(ctx, record); err != nil {
			m.l.LogErrorf("Could not send confirmation for booking %s: %v", record.BookingID, err.Error())
		}
	}

	return record, nil
}

func (m *Manager) List(ctx context.Context) ([]*Record, error) {
	records, err := m.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings from storage: %w", err)
	}

	return records, nil
}

// Get returns the most recent record with the given booking id. Identifiers
// are not unique, so older records sharing the id are shadowed.
func (m *Manager) Get(ctx context.Context, bookingID string) (*Record, error) {
	records, err := m.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := len(records) - 1; i >= 0; i-- {
		if records[i].BookingID == bookingID {
			return records[i], nil
		}
	}

	return nil, fmt.Errorf("booking %s: %w", bookingID, ErrRecordNotFound)
}

func (m *Manager) logConfirmation(r *Record) {
	m.l.With(
		zap.String("booking_id", r.BookingID),
		zap.String("service", r.ServiceName),
		zap.String("date", r.Date),
		zap.String("time", r.Time),
		zap.Int("rooms", r.Rooms),
		zap.String("email", r.Email),
		zap.Float64("subtotal", r.Subtotal),
		zap.Float64("tax", r.TaxAmount),
		zap.Float64("total", r.Total),
	).LogInfo("Booking %s confirmed, payment due upon service completion", r.BookingID)
}
