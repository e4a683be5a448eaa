// Package email delivers notification emails over SMTP.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/bizblocks/bizblocks/internal/application/notification"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// Sender abstracts the SMTP transport; *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier renders markdown bodies to sanitized HTML and sends them as
// multipart messages with the markdown as the plain text part.
type SMTPNotifier struct {
	config   SMTPConfig
	sender   Sender
	renderer *bodyRenderer
	logger   logger.Interface
}

var _ notification.Notifier = (*SMTPNotifier)(nil)

func NewSMTPNotifier(config SMTPConfig, logger logger.Interface) *SMTPNotifier {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	return NewSMTPNotifierWithSender(config, dialer, logger)
}

func NewSMTPNotifierWithSender(config SMTPConfig, sender Sender, logger logger.Interface) *SMTPNotifier {
	return &SMTPNotifier{
		config:   config,
		sender:   sender,
		renderer: newBodyRenderer(),
		logger:   logger,
	}
}

func (s *SMTPNotifier) Send(ctx context.Context, email notification.Email) error {
	if email.To == "" {
		return fmt.Errorf("email recipient is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := s.buildMessage(email)
	if err != nil {
		return err
	}

	if err := s.sender.DialAndSend(m); err != nil {
		s.logger.Warnw("failed to send email", "to", email.To, "subject", email.Subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infow("email sent", "to", email.To, "subject", email.Subject)
	return nil
}

func (s *SMTPNotifier) buildMessage(email notification.Email) (*gomail.Message, error) {
	htmlBody, err := s.renderer.render(email.MarkdownBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build email %q: %w", email.Subject, err)
	}

	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.MarkdownBody)
	m.AddAlternative("text/html", htmlBody)
	return m, nil
}
