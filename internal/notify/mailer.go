// Package notify sends booking confirmations and contact messages by e-mail.
// Without an SMTP host it only logs what it would have sent.
package notify

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/confirmation"
	"github.com/avstrong/zenith/internal/contact"
	"github.com/avstrong/zenith/internal/logger"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Config struct {
	L        *logger.Logger
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	l      *logger.Logger
	from   string
	sender sender
}

func New(conf Config) *Mailer {
	m := &Mailer{l: conf.L, from: conf.From}

	if conf.Host != "" {
		m.sender = gomail.NewDialer(conf.Host, conf.Port, conf.Username, conf.Password)
	}

	return m
}

func (m *Mailer) send(ctx context.Context, msg *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if m.sender == nil {
		m.l.With(zap.Strings("to", msg.GetHeader("To"))).
			LogInfo("SMTP not configured, skipping e-mail %q", firstHeader(msg, "Subject"))

		return nil
	}

	return m.sender.DialAndSend(msg)
}

func firstHeader(msg *gomail.Message, field string) string {
	if v := msg.GetHeader(field); len(v) > 0 {
		return v[0]
	}

	return ""
}

// BookingConfirmed mails the confirmation document to the customer, with the
// print page as the HTML alternative.
func (m *Mailer) BookingConfirmed(ctx context.Context, rec *booking.Record) error {
	var page bytes.Buffer
	if err := confirmation.HTML(&page, rec); err != nil {
		return fmt.Errorf("render confirmation page: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", rec.Email)
	msg.SetHeader("Subject", "Booking Confirmation - "+rec.BookingID)
	msg.SetBody("text/plain", confirmation.Text(rec))
	msg.AddAlternative("text/html", page.String())

	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", rec.Email, err)
	}

	m.l.LogInfo("Confirmation: Email sent to %s", rec.Email)

	return nil
}

// ContactReceived forwards a contact form message to the business inbox.
func (m *Mailer) ContactReceived(ctx context.Context, in *contact.Message) error {
	body := fmt.Sprintf("From: %s <%s>\nPhone: %s\nService interest: %s\n\n%s\n",
		in.Name, in.Email, in.Phone, in.ServiceType, in.Message)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.from)
	msg.SetHeader("Reply-To", in.Email)
	msg.SetHeader("Subject", "Contact: "+in.Subject)
	msg.SetBody("text/plain", body)

	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("forward contact message: %w", err)
	}

	return nil
}
