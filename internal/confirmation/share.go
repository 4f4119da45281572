package confirmation

import (
	"context"
	"errors"
	"fmt"

	"github.com/avstrong/zenith/internal/booking"
)

const ShareTitle = "Zenith Cleaning Booking Confirmation"

var ErrShareUnavailable = errors.New("native share is not available")

type Outcome string

const (
	OutcomeShared Outcome = "shared"
	OutcomeCopied Outcome = "copied"
)

// Sharer hands the message to a platform share facility.
type Sharer interface {
	Share(ctx context.Context, title, text string) error
}

type Clipboard interface {
	WriteAll(text string) error
}

func ShareText(rec *booking.Record) string {
	return fmt.Sprintf("Booking Confirmed! 🎉\n\nService: %s\nDate: %s at %s\nBooking ID: %s\n\n%s - Professional Home Cleaning",
		rec.ServiceName, rec.Date, rec.Time, rec.BookingID, BusinessName)
}

// Share tries the sharer first and copies the message to the clipboard when
// sharing is unavailable or fails. A nil sharer counts as unavailable.
func Share(ctx context.Context, rec *booking.Record, sharer Sharer, clipboard Clipboard) (Outcome, error) {
	text := ShareText(rec)

	if sharer != nil {
		err := sharer.Share(ctx, ShareTitle, text)
		if err == nil {
			return OutcomeShared, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
	}

	if clipboard == nil {
		return "", ErrShareUnavailable
	}

	if err := clipboard.WriteAll(text); err != nil {
		return "", fmt.Errorf("copy share text to clipboard: %w", err)
	}

	return OutcomeCopied, nil
}
