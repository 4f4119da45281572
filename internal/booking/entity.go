package booking

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/avstrong/zenith/internal/quote"
)

type BookInput struct {
	ServiceID    string `json:"service" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Rooms        string `json:"rooms" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	Address      string `json:"address" validate:"required"`
	Instructions string `json:"instructions,omitempty"`
}

// UnmarshalJSON accepts rooms as either a JSON string or a JSON number.
func (b *BookInput) UnmarshalJSON(data []byte) error {
	type plain BookInput

	aux := struct {
		*plain
		Rooms json.RawMessage `json:"rooms"`
	}{plain: (*plain)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	rooms, err := quote.RoomsText(aux.Rooms)
	if err != nil {
		return NewFieldError("rooms", "provide rooms as text or a number")
	}

	b.Rooms = rooms

	return nil
}

func (b *BookInput) trim() {
	for _, field := range []*string{
		&b.ServiceID, &b.Date, &b.Time, &b.Rooms, &b.Name,
		&b.Email, &b.Phone, &b.Address, &b.Instructions,
	} {
		*field = strings.TrimSpace(*field)
	}
}

// Record is a confirmed booking. It is written once and never updated; the
// service name, duration and features are copies taken at submission time.
type Record struct {
	BookingID string    `json:"booking_id"`
	CreatedAt time.Time `json:"created_at"`

	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    string `json:"duration"`
	Rooms       int    `json:"rooms"`

	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Instructions string `json:"instructions,omitempty"`

	BasePrice            float64 `json:"base_price"`
	AdditionalRoomsPrice float64 `json:"additional_rooms_price"`
	Subtotal             float64 `json:"subtotal"`
	TaxAmount            float64 `json:"tax_amount"`
	Total                float64 `json:"total"`

	Features []string `json:"features"`
}

func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}

	out := *r
	out.Features = append([]string(nil), r.Features...)

	return &out
}
