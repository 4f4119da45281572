// Package confirmation renders a booking record for the customer: as a
// downloadable text document, a printable page and a short share message.
package confirmation

import (
	"fmt"
	"strings"

	"github.com/avstrong/zenith/internal/booking"
)

const (
	BusinessName  = "Zenith Cleaning Co."
	BusinessPhone = "+1 (555) 123-4567"
	BusinessEmail = "info@zenithcleaning.com"
	BusinessSite  = "zenithcleaning.com"

	// CreatedLayout mimics an en-US locale date-time string.
	CreatedLayout = "1/2/2006, 3:04:05 PM"
)

func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func FileName(rec *booking.Record) string {
	return "zenith-booking-" + rec.BookingID + ".txt"
}

func heading(b *strings.Builder, title string) {
	b.WriteString(title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(title)))
	b.WriteByte('\n')
}

// Text renders the downloadable confirmation document.
func Text(rec *booking.Record) string {
	var b strings.Builder

	title := "ZENITH CLEANING CO. - BOOKING CONFIRMATION"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	fmt.Fprintf(&b, "Booking ID: %s\n", rec.BookingID)
	fmt.Fprintf(&b, "Date Created: %s\n\n", rec.CreatedAt.Format(CreatedLayout))

	heading(&b, "SERVICE DETAILS")
	fmt.Fprintf(&b, "Service: %s\nDate: %s\nTime: %s\nDuration: %s\nRooms: %d\n\n",
		rec.ServiceName, rec.Date, rec.Time, rec.Duration, rec.Rooms)

	heading(&b, "CUSTOMER INFORMATION")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nPhone: %s\nAddress: %s\n\n",
		rec.Name, rec.Email, rec.Phone, rec.Address)

	heading(&b, "PRICING BREAKDOWN")
	fmt.Fprintf(&b, "Base Service: %s\n", Money(rec.BasePrice))
	fmt.Fprintf(&b, "Additional Rooms: %s\n", Money(rec.AdditionalRoomsPrice))
	fmt.Fprintf(&b, "Subtotal: %s\n", Money(rec.Subtotal))
	fmt.Fprintf(&b, "Tax (13%% HST): %s\n", Money(rec.TaxAmount))
	fmt.Fprintf(&b, "TOTAL: %s\n\n", Money(rec.Total))

	heading(&b, "SERVICE INCLUDES")
	for _, feature := range rec.Features {
		fmt.Fprintf(&b, "• %s\n", feature)
	}
	b.WriteByte('\n')

	if rec.Instructions != "" {
		heading(&b, "SPECIAL INSTRUCTIONS")
		b.WriteString(rec.Instructions + "\n\n")
	}

	heading(&b, "CONTACT INFORMATION")
	fmt.Fprintf(&b, "Phone: %s\nEmail: %s\nWebsite: %s\n\n", BusinessPhone, BusinessEmail, BusinessSite)
	fmt.Fprintf(&b, "Thank you for choosing %s!\nWe look forward to serving you.\n", BusinessName)

	return b.String()
}
