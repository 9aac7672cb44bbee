package mailer

import (
	"fmt"
	"net/smtp"

	"contacts-api/config"
)

// Mailer sends transactional mail over plain SMTP.
type Mailer struct {
	from     string
	username string
	password string
	host     string
	port     string
}

func New(cfg config.Config) *Mailer {
	return &Mailer{
		from:     cfg.MailFrom,
		username: cfg.MailUsername,
		password: cfg.MailPassword,
		host:     cfg.MailServer,
		port:     cfg.MailPort,
	}
}

// SendConfirmation mails the address a link that confirms it.
func (m *Mailer) SendConfirmation(to, username, confirmURL string) error {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f4f4f7; margin: 0; padding: 0;">
  <div style="background: #ffffff; max-width: 500px; margin: 40px auto; padding: 30px; border-radius: 8px; text-align: center;">
    <h2>Welcome to Contacts, %s!</h2>
    <p>Please confirm your email address by clicking the link below:</p>
    <p><a href="%s">Confirm email</a></p>
    <p style="font-size: 12px; color: #888; margin-top: 20px;">
      If you didn't create this account, you can safely ignore this email.
    </p>
  </div>
</body>
</html>
`, username, confirmURL)

	msg := []byte("Subject: Confirm your email\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		htmlBody)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg)
}
