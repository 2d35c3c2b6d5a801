// Package mail implements the notification dispatchers consumed by the
// service layer: a real SMTP sender and a log-only stand-in for development.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

type SMTPConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	From         string
	SupportInbox string
}

type SMTPDispatcher struct {
	config SMTPConfig
	send   func(addr string, auth smtp.Auth, from string, to []string, message []byte) error
}

func NewSMTPDispatcher(config SMTPConfig) *SMTPDispatcher {
	return &SMTPDispatcher{config: config, send: smtp.SendMail}
}

func (dispatcher *SMTPDispatcher) SendVerificationCode(ctx context.Context, email string, name string, code string, validFor time.Duration) error {
	subject := "Your GoPlanner verification code"
	body := verificationBody(name, code, validFor)
	return dispatcher.deliver(ctx, email, subject, body)
}

func (dispatcher *SMTPDispatcher) SendContactMessage(ctx context.Context, name string, email string, subject string, message string, issueType string) error {
	inbox := dispatcher.config.SupportInbox
	if inbox == "" {
		inbox = dispatcher.config.From
	}
	return dispatcher.deliver(ctx, inbox, "[Contact] "+subject, contactBody(name, email, message, issueType))
}

func (dispatcher *SMTPDispatcher) deliver(ctx context.Context, to string, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", dispatcher.config.Host, dispatcher.config.Port)
	var auth smtp.Auth
	if dispatcher.config.Username != "" {
		auth = smtp.PlainAuth("", dispatcher.config.Username, dispatcher.config.Password, dispatcher.config.Host)
	}

	message := buildMessage(dispatcher.config.From, to, subject, body)
	if err := dispatcher.send(addr, auth, dispatcher.config.From, []string{to}, message); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from string, to string, subject string, body string) []byte {
	var builder strings.Builder
	builder.WriteString("From: GoPlanner <" + from + ">\r\n")
	builder.WriteString("To: " + to + "\r\n")
	builder.WriteString("Subject: " + subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)
	builder.WriteString("\r\n")
	return []byte(builder.String())
}

func verificationBody(name string, code string, validFor time.Duration) string {
	minutes := int(validFor.Minutes())
	return fmt.Sprintf(
		"Hi %s,\n\nYour GoPlanner verification code is: %s\n\nIt expires in %d minutes. If you didn't create this account, you can ignore this message.\n",
		name, code, minutes,
	)
}

func contactBody(name string, email string, message string, issueType string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "From: %s <%s>\n", name, email)
	if issueType != "" {
		fmt.Fprintf(&builder, "Issue type: %s\n", issueType)
	}
	builder.WriteString("\n")
	builder.WriteString(message)
	builder.WriteString("\n")
	return builder.String()
}
