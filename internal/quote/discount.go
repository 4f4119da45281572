package quote

import "github.com/avstrong/zenith/internal/catalog"

type Strategy interface {
	Apply(b *Breakdown)
}

type FrequencyDiscount struct {
	Frequency catalog.Frequency
}

func (d FrequencyDiscount) Apply(b *Breakdown) {
	b.DiscountAmount += b.Subtotal * d.Frequency.Discount
}
