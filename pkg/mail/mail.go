package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"os"

	"github.com/pashm-co/storefront-api/pkg/global"
)

const (
	smtpHost = "smtp.gmail.com"
	smtpPort = "587"
)

// SendContactMessage forwards a storefront contact-form submission to the
// shop inbox. When SMTP credentials are not configured the message is logged
// and accepted, so the form keeps working in development.
func SendContactMessage(name, email, message string) error {
	user := os.Getenv("EMAIL_USER")
	pass := os.Getenv("EMAIL_PASS")
	inbox := global.GetEnvOrDefault("CONTACT_INBOX", "pashmco@gmail.com")

	if user == "" || pass == "" {
		log.Printf("Contact message from %s <%s> (email delivery not configured): %s", name, email, message)
		return nil
	}

	subject := fmt.Sprintf("New contact message from %s", name)
	body := fmt.Sprintf("From: %s <%s>\r\n\r\n%s\r\n", name, email, message)
	msg := []byte("Subject: " + subject + "\r\n" +
		"To: " + inbox + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" + body)

	auth := smtp.PlainAuth("", user, pass, smtpHost)
	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, user, []string{inbox}, msg); err != nil {
		return fmt.Errorf("sending contact mail: %w", err)
	}
	return nil
}
