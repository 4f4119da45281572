package confirmation

import (
	"html/template"
	"io"

	"github.com/avstrong/zenith/internal/booking"
)

var printTemplate = template.Must(template.New("print").Funcs(template.FuncMap{
	"money": Money,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Booking Confirmation - {{.Rec.BookingID}}</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
.header { text-align: center; border-bottom: 2px solid #3B82F6; padding-bottom: 20px; margin-bottom: 30px; }
.logo { font-size: 24px; font-weight: bold; color: #3B82F6; margin-bottom: 10px; }
.booking-id { font-size: 18px; font-weight: bold; background: #F3F4F6; padding: 10px; border-radius: 8px; margin: 20px 0; }
.section { margin-bottom: 25px; padding: 15px; border: 1px solid #E5E7EB; border-radius: 8px; }
.section-title { font-size: 16px; font-weight: bold; color: #1F2937; margin-bottom: 15px; border-bottom: 1px solid #E5E7EB; padding-bottom: 8px; }
.detail-row { display: flex; justify-content: space-between; margin-bottom: 8px; }
.detail-label { font-weight: 600; color: #4B5563; }
.detail-value { color: #1F2937; }
.total-row { font-size: 18px; font-weight: bold; color: #3B82F6; border-top: 2px solid #E5E7EB; padding-top: 10px; margin-top: 15px; }
.features-list { list-style: none; padding: 0; }
.features-list li { padding: 5px 0; border-bottom: 1px solid #F3F4F6; }
.features-list li:before { content: "✓ "; color: #10B981; font-weight: bold; }
.footer { text-align: center; margin-top: 40px; padding-top: 20px; border-top: 1px solid #E5E7EB; color: #6B7280; }
@media print { body { margin: 0; padding: 15px; } }
</style>
</head>
<body>
<div class="header">
  <div class="logo">{{.Name}}</div>
  <div>Booking Confirmed!</div>
  <div class="booking-id">Booking Reference: {{.Rec.BookingID}}</div>
</div>

<div class="section">
  <div class="section-title">Service Details</div>
  <div class="detail-row"><span class="detail-label">Service Type</span><span class="detail-value">{{.Rec.ServiceName}}</span></div>
  <div class="detail-row"><span class="detail-label">Date</span><span class="detail-value">{{.Rec.Date}}</span></div>
  <div class="detail-row"><span class="detail-label">Time</span><span class="detail-value">{{.Rec.Time}}</span></div>
  <div class="detail-row"><span class="detail-label">Duration</span><span class="detail-value">{{.Rec.Duration}}</span></div>
  <div class="detail-row"><span class="detail-label">Rooms</span><span class="detail-value">{{.Rec.Rooms}}</span></div>
</div>

<div class="section">
  <div class="section-title">Customer Information</div>
  <div class="detail-row"><span class="detail-label">Name</span><span class="detail-value">{{.Rec.Name}}</span></div>
  <div class="detail-row"><span class="detail-label">Email</span><span class="detail-value">{{.Rec.Email}}</span></div>
  <div class="detail-row"><span class="detail-label">Phone</span><span class="detail-value">{{.Rec.Phone}}</span></div>
  <div class="detail-row"><span class="detail-label">Service Address</span><span class="detail-value">{{.Rec.Address}}</span></div>
</div>

<div class="section">
  <div class="section-title">Pricing Breakdown</div>
  <div class="detail-row"><span class="detail-label">Base Service</span><span class="detail-value">{{money .Rec.BasePrice}}</span></div>
  {{- if gt .Rec.AdditionalRoomsPrice 0.0}}
  <div class="detail-row"><span class="detail-label">Additional Rooms</span><span class="detail-value">{{money .Rec.AdditionalRoomsPrice}}</span></div>
  {{- end}}
  <div class="detail-row"><span class="detail-label">Subtotal</span><span class="detail-value">{{money .Rec.Subtotal}}</span></div>
  <div class="detail-row"><span class="detail-label">Tax (13% HST)</span><span class="detail-value">{{money .Rec.TaxAmount}}</span></div>
  <div class="detail-row total-row"><span>Total Amount</span><span>{{money .Rec.Total}}</span></div>
  <p>Payment is due upon service completion.</p>
</div>

<div class="section">
  <div class="section-title">Service Includes</div>
  <ul class="features-list">
  {{- range .Rec.Features}}
    <li>{{.}}</li>
  {{- end}}
  </ul>
</div>
{{- if .Rec.Instructions}}

<div class="section">
  <div class="section-title">Special Instructions</div>
  <p>{{.Rec.Instructions}}</p>
</div>
{{- end}}

<div class="footer">
  <p><strong>{{.Name}}</strong></p>
  <p>Phone: {{.Phone}} | Email: {{.Email}}</p>
  <p>Thank you for choosing our professional cleaning services!</p>
</div>
</body>
</html>
`))

type printPage struct {
	Rec   *booking.Record
	Name  string
	Phone string
	Email string
}

// HTML writes the print-formatted confirmation page.
func HTML(w io.Writer, rec *booking.Record) error {
	return printTemplate.Execute(w, printPage{
		Rec:   rec,
		Name:  BusinessName,
		Phone: BusinessPhone,
		Email: BusinessEmail,
	})
}
