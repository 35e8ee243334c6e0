package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendOrderAccepted(ctx context.Context, to, name string, orderID int32, due time.Time) error {
	subject := fmt.Sprintf("Your rental order #%d is ready", orderID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental order #%d has been accepted and the equipment is reserved for you.\nPlease return it by %s.\n\nSee you on the slopes!",
		name, orderID, due.Format("Monday, 2 January 2006"))
	return s.send(to, name, subject, body)
}

func (s *emailService) SendOrderReturned(ctx context.Context, to, name string, orderID int32) error {
	subject := fmt.Sprintf("Rental order #%d closed", orderID)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe have received all equipment from your rental order #%d. The order is now closed.\n\nThank you for renting with us!",
		name, orderID)
	return s.send(to, name, subject, body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, to, name string, orderID int32, due time.Time) error {
	subject := fmt.Sprintf("Rental order #%d is overdue", orderID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental order #%d was due back on %s. Please return the equipment as soon as possible.",
		name, orderID, due.Format("Monday, 2 January 2006"))
	return s.send(to, name, subject, body)
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
