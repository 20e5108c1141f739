// utils/email.go
package utils

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

// SendDocumentDeliveryEmail notifies the applicant that their document
// is ready. Delivery is best effort: when SMTP is not configured the
// call is a no-op and the portal download remains the source of truth.
func SendDocumentDeliveryEmail(toEmail, username, serviceType, notes string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		return nil
	}

	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	smtpPort := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}

	subject := fmt.Sprintf("Your %s document is ready", serviceType)
	body := fmt.Sprintf("Dear %s,\n\nYour document for %s has been processed and sent to you. You can also download it from the portal under My Documents.\n", username, serviceType)
	if notes != "" {
		body += fmt.Sprintf("\nNote from the office: %s\n", notes)
	}
	body += "\nRegards,\nOnline Government Service Portal"

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send delivery email to %s: %v", toEmail, err)
		return err
	}
	return nil
}
