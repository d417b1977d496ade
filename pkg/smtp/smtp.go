package smtp

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Client is the outbound transactional mail sender.
type Client struct {
	dialer *gomail.Dialer
}

func NewClient(dialer *gomail.Dialer) *Client {
	return &Client{dialer: dialer}
}

// SendVerificationEmail sends the email-address confirmation code.
func (c *Client) SendVerificationEmail(to string, code string) error {
	msg := c.newMessage(to, "Confirm your email")
	msg.SetBody("text/plain", fmt.Sprintf("Your Qypym verification code is %s", code))
	msg.AddAlternative("text/html", fmt.Sprintf("<p>Your Qypym verification code is <b>%s</b></p>", code))
	return c.send(msg)
}

// SendPasswordResetEmail sends the password reset code.
func (c *Client) SendPasswordResetEmail(to string, code string) error {
	msg := c.newMessage(to, "Reset your password")
	msg.SetBody("text/plain", fmt.Sprintf("Use this code to reset your Qypym password: %s", code))
	msg.AddAlternative("text/html", fmt.Sprintf("<p>Use this code to reset your Qypym password: <b>%s</b></p>", code))
	return c.send(msg)
}

// SendMatchVerificationEmail sends the on-site check-in code for a match,
// with the same code attached as a QR image for the organizer to scan.
func (c *Client) SendMatchVerificationEmail(to string, matchTitle string, code string) error {
	msg := c.newMessage(to, fmt.Sprintf("Check-in code for %s", matchTitle))
	msg.SetBody("text/plain", fmt.Sprintf("Your check-in code for %s is %s", matchTitle, code))
	msg.AddAlternative("text/html", fmt.Sprintf("<p>Your check-in code for %s is <b>%s</b></p>", matchTitle, code))

	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate check-in qr: %w", err)
	}
	msg.Attach("checkin.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, errWrite := w.Write(png)
		return errWrite
	}))

	return c.send(msg)
}

// SendMatchReminderEmail reminds a player about an upcoming match.
func (c *Client) SendMatchReminderEmail(to string, matchTitle string, startsAt string) error {
	msg := c.newMessage(to, fmt.Sprintf("Reminder: %s", matchTitle))
	msg.SetBody("text/plain", fmt.Sprintf("Your match %s starts at %s", matchTitle, startsAt))
	msg.AddAlternative("text/html", fmt.Sprintf("<p>Your match <b>%s</b> starts at %s</p>", matchTitle, startsAt))
	return c.send(msg)
}

func (c *Client) newMessage(to, subject string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(viper.GetString("service.smtp.domain")))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", viper.GetString("service.smtp.email"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	return msg
}

func (c *Client) send(msg *gomail.Message) error {
	return c.dialer.DialAndSend(msg)
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
