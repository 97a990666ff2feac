package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"os"

	"github.com/UchinthaB/SDP-Project-sub000/models"
)

// Mailer sends order notifications. Failures are never fatal to the request
// that triggered them; callers fire-and-forget on a goroutine.
type Mailer interface {
	SendStatusUpdate(to string, order models.Order) error
}

// FromEnv builds a mailer from SMTP_* env vars, or a disabled one when no
// host is configured.
func FromEnv() Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return disabledMailer{}
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &smtpMailer{
		addr: host + ":" + port,
		auth: smtp.PlainAuth("", os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"), host),
		from: os.Getenv("SMTP_FROM"),
	}
}

type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func (m *smtpMailer) SendStatusUpdate(to string, order models.Order) error {
	subject := fmt.Sprintf("Order #%d update", order.TokenNumber)
	body := fmt.Sprintf(
		"Hi,\r\n\r\nYour order (token #%d) is now %s.\r\n\r\nThank you for ordering with us.\r\n",
		order.TokenNumber, order.Status,
	)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body))
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg)
}

type disabledMailer struct{}

func (disabledMailer) SendStatusUpdate(string, models.Order) error { return nil }

// StatusChanged emails the order's customer in the background.
func StatusChanged(m Mailer, order models.Order) {
	if order.User.Email == "" {
		return
	}
	go func() {
		if err := m.SendStatusUpdate(order.User.Email, order); err != nil {
			log.Printf("failed to send status mail for order %d: %v", order.OrderID, err)
		}
	}()
}
