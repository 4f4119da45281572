package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/logger"
	"github.com/avstrong/zenith/internal/simulate"
)

type Message struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone,omitempty"`
	Subject     string `json:"subject" validate:"required"`
	Message     string `json:"message" validate:"required"`
	ServiceType string `json:"service_type,omitempty"`
}

type Receipt struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
}

type notifier interface {
	ContactReceived(ctx context.Context, msg *Message) error
}

type Config struct {
	L        *logger.Logger
	Notifier notifier
	Delay    time.Duration
}

type Desk struct {
	l        *logger.Logger
	notifier notifier
	delay    time.Duration
	validate *validator.Validate
}

func New(conf Config) *Desk {
	return &Desk{
		l:        conf.L,
		notifier: conf.Notifier,
		delay:    conf.Delay,
		validate: booking.NewValidator(),
	}
}

// Submit accepts a contact form message. Forwarding failures are logged and
// do not fail the submission.
func (d *Desk) Submit(ctx context.Context, msg *Message) (*Receipt, error) {
	for _, field := range []*string{&msg.Name, &msg.Email, &msg.Phone, &msg.Subject, &msg.Message, &msg.ServiceType} {
		*field = strings.TrimSpace(*field)
	}

	if err := d.validate.Struct(msg); err != nil {
		return nil, booking.ToInputError(err)
	}

	if err := simulate.Remote(ctx, d.delay); err != nil {
		return nil, fmt.Errorf("send contact message: %w", err)
	}

	receipt := &Receipt{ID: uuid.NewString(), ReceivedAt: time.Now().UTC()}

	d.l.With(
		zap.String("message_id", receipt.ID),
		zap.String("email", msg.Email),
		zap.String("service_type", msg.ServiceType),
	).LogInfo("Contact message received: %s", msg.Subject)

	if d.notifier != nil {
		if err := d.notifier.ContactReceived(ctx, msg); err != nil {
			d.l.LogErrorf("Could not forward contact message %s: %v", receipt.ID, err.Error())
		}
	}

	return receipt, nil
}
