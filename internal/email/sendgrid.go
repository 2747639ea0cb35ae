// internal/email/sendgrid.go
package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendWithSendgrid delivers an invitation or notification through the
// Sendgrid API. Anything other than a 202 counts as a failure so callers
// can fall back to the invitation row as the source of truth.
func (s *Service) sendWithSendgrid(data EmailData, htmlContent, textContent string) error {
	from := mail.NewEmail(data.FromName, data.From)
	to := mail.NewEmail("", data.To)
	message := mail.NewSingleEmail(from, data.Subject, to, textContent, htmlContent)

	response, err := s.sendgridClient.Send(message)
	if err != nil {
		return fmt.Errorf("sending email via Sendgrid: %w", err)
	}

	if response.StatusCode != 202 {
		return fmt.Errorf("unexpected Sendgrid status code: %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
