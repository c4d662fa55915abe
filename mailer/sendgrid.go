// Package mailer delivers transactional email through SendGrid.
package mailer

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGrid implements the Send(to, subject, body) contract the OTP
// workflow expects.
type SendGrid struct {
	apiKey string
	sender string
}

func NewSendGrid(apiKey, sender string) *SendGrid {
	return &SendGrid{apiKey: apiKey, sender: sender}
}

func (s *SendGrid) Send(to, subject, htmlBody string) error {
	from := mail.NewEmail("Learning Platform", s.sender)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}
