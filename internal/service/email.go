package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendBookingCreated(ctx context.Context, email, bookingCode string, amount int64) error {
	body := fmt.Sprintf("Your booking %s has been created.\n\nAmount due: %d.\n\nPlease complete payment to confirm your stay.", bookingCode, amount)
	return s.send(email, fmt.Sprintf("Booking %s Created", bookingCode), body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, email, bookingCode string, amount int64) error {
	body := fmt.Sprintf("We received your payment of %d for booking %s.\n\nThank you.", amount, bookingCode)
	return s.send(email, fmt.Sprintf("Payment Received - %s", bookingCode), body)
}
