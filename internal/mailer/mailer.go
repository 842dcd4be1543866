package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer notifies an owner that their listing went live.
type Mailer interface {
	SendListingPublished(ctx context.Context, toEmail, listingTitle string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Email    string
	Password string
}

type SMTPMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password),
	}
}

func (m *SMTPMailer) SendListingPublished(ctx context.Context, toEmail, listingTitle string) error {
	if toEmail == "" {
		return fmt.Errorf("no recipient provided for email")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Email)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Your listing is live")
	msg.SetBody("text/plain", "Your listing '"+listingTitle+"' has been published successfully.")

	return m.dialer.DialAndSend(msg)
}
