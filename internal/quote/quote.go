// Package quote derives itemized price breakdowns from the service catalog.
//
// Two flows exist. The pricing calculator applies the frequency discount
// before tax; the booking form has no frequency step and taxes the full
// subtotal. Both recompute everything from the catalog on every call.
package quote

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/avstrong/zenith/internal/catalog"
)

const (
	TaxRate  = 0.13
	TaxLabel = "HST"

	// MaxRooms caps the room count so oversized input never prices below
	// a smaller home.
	MaxRooms = 1000
)

type catalogReader interface {
	LookupService(id string) (catalog.Service, bool)
	LookupFrequency(id string) (catalog.Frequency, bool)
}

type Breakdown struct {
	BasePrice            float64 `json:"base_price"`
	AdditionalRoomsPrice float64 `json:"additional_rooms_price"`
	Subtotal             float64 `json:"subtotal"`
	DiscountAmount       float64 `json:"discount_amount"`
	TaxAmount            float64 `json:"tax_amount"`
	Total                float64 `json:"total"`
}

func (b Breakdown) IsZero() bool {
	return b == Breakdown{}
}

type Request struct {
	ServiceID   string `json:"service"`
	Rooms       string `json:"rooms"`
	FrequencyID string `json:"frequency"`
}

// UnmarshalJSON accepts rooms as either a JSON string or a JSON number.
func (r *Request) UnmarshalJSON(data []byte) error {
	type plain Request

	aux := struct {
		*plain
		Rooms json.RawMessage `json:"rooms"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	rooms, err := RoomsText(aux.Rooms)
	if err != nil {
		return err
	}

	r.Rooms = rooms

	return nil
}

var ErrRoomsType = errors.New("rooms must be a string or a number")

// RoomsText turns a raw JSON rooms value into its text form. Absent and
// null values become the empty string.
func RoomsText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", ErrRoomsType
	}

	return n.String(), nil
}

type Engine struct {
	catalog catalogReader
	taxRate float64
}

func New(c catalogReader) *Engine {
	return &Engine{catalog: c, taxRate: TaxRate}
}

// Calculate is the pricing calculator flow. Until service, rooms and
// frequency are all selected and known, the result is the zero breakdown.
func (e *Engine) Calculate(req Request) Breakdown {
	if req.ServiceID == "" || strings.TrimSpace(req.Rooms) == "" || req.FrequencyID == "" {
		return Breakdown{}
	}

	service, ok := e.catalog.LookupService(req.ServiceID)
	if !ok {
		return Breakdown{}
	}

	frequency, ok := e.catalog.LookupFrequency(req.FrequencyID)
	if !ok {
		return Breakdown{}
	}

	return Compute(service, ParseRooms(req.Rooms), e.taxRate, FrequencyDiscount{Frequency: frequency})
}

// ForBooking is the booking form flow: no discount, tax on the full subtotal.
func (e *Engine) ForBooking(serviceID, rooms string) Breakdown {
	service, ok := e.catalog.LookupService(serviceID)
	if !ok {
		return Breakdown{}
	}

	return Compute(service, ParseRooms(rooms), e.taxRate)
}

// Compute prices a service for rooms rooms; the first room is part of the
// base price. Strategies run on the subtotal before tax.
func Compute(s catalog.Service, rooms int, taxRate float64, strategies ...Strategy) Breakdown {
	extra := rooms - 1
	if extra < 0 {
		extra = 0
	}

	b := Breakdown{
		BasePrice:            s.BasePrice,
		AdditionalRoomsPrice: s.PerRoomPrice * float64(extra),
	}
	b.Subtotal = b.BasePrice + b.AdditionalRoomsPrice

	for _, strategy := range strategies {
		strategy.Apply(&b)
	}

	if b.DiscountAmount > b.Subtotal {
		b.DiscountAmount = b.Subtotal
	}

	taxable := b.Subtotal - b.DiscountAmount
	b.TaxAmount = taxable * taxRate
	b.Total = taxable + b.TaxAmount

	return b
}

// ParseRooms reads the leading integer of s. Absent, non-numeric and
// non-positive input counts as a single room; anything above MaxRooms,
// including values that overflow int, counts as MaxRooms.
func ParseRooms(s string) int {
	s = strings.TrimSpace(s)

	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end >= 0 {
		s = s[:end]
	}

	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) || n > MaxRooms {
		return MaxRooms
	}

	if err != nil || n < 1 {
		return 1
	}

	return n
}
