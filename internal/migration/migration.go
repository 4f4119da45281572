package migration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/logger"
	"github.com/avstrong/zenith/internal/quote"
)

type storage interface {
	Append(ctx context.Context, record *booking.Record) error
}

// legacyBooking is one entry of the "zenith-bookings" array the web client
// kept in browser storage.
type legacyBooking struct {
	ServiceType         string   `json:"serviceType"`
	ServiceName         string   `json:"serviceName"`
	Date                string   `json:"date"`
	Time                string   `json:"time"`
	Duration            string   `json:"duration"`
	Rooms               string   `json:"rooms"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone"`
	Address             string   `json:"address"`
	BasePrice           float64  `json:"basePrice"`
	AdditionalRooms     float64  `json:"additionalRooms"`
	Subtotal            float64  `json:"subtotal"`
	Tax                 float64  `json:"tax"`
	Total               float64  `json:"total"`
	SpecialInstructions string   `json:"specialInstructions"`
	BookingID           string   `json:"bookingId"`
	Timestamp           string   `json:"timestamp"`
	Features            []string `json:"features"`
}

func (b legacyBooking) toRecord() (*booking.Record, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, b.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp of %s: %w", b.BookingID, err)
	}

	features := b.Features
	if features == nil {
		features = []string{}
	}

	return &booking.Record{
		BookingID:            b.BookingID,
		CreatedAt:            createdAt.UTC(),
		ServiceID:            b.ServiceType,
		ServiceName:          b.ServiceName,
		Date:                 b.Date,
		Time:                 b.Time,
		Duration:             b.Duration,
		Rooms:                quote.ParseRooms(b.Rooms),
		Name:                 b.Name,
		Email:                b.Email,
		Phone:                b.Phone,
		Address:              b.Address,
		Instructions:         b.SpecialInstructions,
		BasePrice:            b.BasePrice,
		AdditionalRoomsPrice: b.AdditionalRooms,
		Subtotal:             b.Subtotal,
		TaxAmount:            b.Tax,
		Total:                b.Total,
		Features:             features,
	}, nil
}

// Import appends every booking of a browser-storage export to storage,
// keeping the stored prices as they were. Each entry is keyed by its id and
// timestamp, so importing the same export twice adds nothing.
func Import(ctx context.Context, l *logger.Logger, storage storage, r io.Reader) (imported int, err error) {
	var legacy []legacyBooking
	if err := json.NewDecoder(r).Decode(&legacy); err != nil {
		return 0, fmt.Errorf("decode legacy bookings: %w", err)
	}

	for _, entry := range legacy {
		record, err := entry.toRecord()
		if err != nil {
			return imported, err
		}

		keyed := booking.NewContextWithIdempotencyKey(ctx, "legacy:"+entry.BookingID+":"+entry.Timestamp)

		err = storage.Append(keyed, record)
		if errors.Is(err, booking.ErrDuplicateSubmission) {
			l.LogInfo("Skipping already imported booking %s", entry.BookingID)

			continue
		}

		if err != nil {
			return imported, fmt.Errorf("append legacy booking %s: %w", entry.BookingID, err)
		}

		imported++
	}

	l.LogInfo("Imported %d of %d legacy bookings", imported, len(legacy))

	return imported, nil
}
