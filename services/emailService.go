package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
}

var emailService *EmailService

// InitEmailService initializes the Resend client used for teacher
// alerts.
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email alerts will not be available.")
		return
	}

	fromEmail := os.Getenv("ALERT_FROM_EMAIL")
	if fromEmail == "" {
		fromEmail = "alerts@nooralqalb.app"
	}

	emailService = &EmailService{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}

	log.Println("Email service initialized successfully with Resend")
}

func GetEmailService() *EmailService {
	return emailService
}

// SendRiskAlertEmail notifies the configured teacher address that a
// student has been inactive for a consecutive run of days.
func (s *EmailService) SendRiskAlertEmail(toEmail string, studentName string, inactiveDays int) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #b45309;">Student needs attention</h2>
    <p><strong>%s</strong> has not logged any prayer as performed for
    <strong>%d consecutive day(s)</strong>.</p>
    <p>Consider checking in with them. A short conversation often helps
    more than a reminder.</p>
    <p style="font-size: 12px; color: #666; border-top: 1px solid #ddd; padding-top: 12px;">
    Automated alert from the Noor Al-Qalb prayer tracker.</p>
</body>
</html>`, studentName, inactiveDays)

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Inactivity alert: %s (%d days)", studentName, inactiveDays),
		Html:    htmlBody,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send risk alert email: %w", err)
	}

	return nil
}
