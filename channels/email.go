package channels

import (
	"context"
	"fmt"
	"net/smtp"
	"regexp"
	"strings"

	"github.com/prathameshp107/ClinLabOps-sub003/models/channel"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmailMeta represents the required metadata for email notifications
type ValidEmailMeta struct {
	To      string `json:"to" example:"user@example.com"`
	Subject string `json:"subject" example:"Deadline approaching"`
}

// EmailChannel sends mail over plain SMTP. Auth is skipped when Username is
// empty so a local relay (e.g. mailhog) works in development.
type EmailChannel struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

func (c *EmailChannel) Name() string {
	return "email"
}

func (c *EmailChannel) Validate(meta map[string]string) error {
	if to, ok := meta["to"]; !ok || !emailRe.MatchString(to) {
		return fmt.Errorf("to field with valid email address is required")
	}
	return nil
}

func (c *EmailChannel) Prepare(ctx context.Context, msg *channel.Message) error {
	if msg.Meta["subject"] == "" {
		msg.Meta["subject"] = msg.Title
	}
	return nil
}

func (c *EmailChannel) Send(ctx context.Context, msg channel.Message) error {
	addr := c.Host + ":" + c.Port
	to := msg.Meta["to"]

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", c.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Meta["subject"])
	if msg.Priority == "high" {
		b.WriteString("X-Priority: 1\r\n")
	}
	b.WriteString("MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n")
	fmt.Fprintf(&b, "<html><body>%s</body></html>", msg.Content)

	var auth smtp.Auth
	if c.Username != "" {
		auth = smtp.PlainAuth("", c.Username, c.Password, c.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, c.From, []string{to}, []byte(b.String()))
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
