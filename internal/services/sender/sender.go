// Package sender формирует и отправляет письма посетителям по задачам из очереди.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/lib/smtp"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/rabbitmq"
)

const expiringSubject = "Your gym membership is expiring soon"

// Service отправляет письма через SMTP транспорт.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendMembershipExpiring отправляет письмо о скором окончании абонемента.
// Нечитаемое сообщение или сообщение без адреса помечается rabbitmq.ErrDiscard.
func (s *Service) SendMembershipExpiring(body []byte) error {
	var message models.MembershipExpiringEvent
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w: %w", rabbitmq.ErrDiscard, err)
	}
	if message.Email == "" {
		return fmt.Errorf("error validating message: empty recipient for user %s: %w", message.UserUID, rabbitmq.ErrDiscard)
	}

	name := message.Name
	if name == "" {
		name = "member"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hello, %s!\n\n", name)
	b.WriteString(message.Message)
	if !message.ExpiryDate.IsZero() {
		fmt.Fprintf(&b, "\n\nYour %s membership expires on %s.", orPlan(message.MembershipType),
			message.ExpiryDate.Format("January 2, 2006"))
	}

	return s.sendEmail([]string{message.Email}, expiringSubject, b.String())
}

func orPlan(t string) string {
	if t == "" {
		return "current"
	}
	return t
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
