package mail

import (
	"context"
	"log"
	"time"
)

// LogDispatcher writes notifications to the process log instead of sending
// them. Used when no SMTP host is configured, and in tests.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (dispatcher *LogDispatcher) SendVerificationCode(ctx context.Context, email string, name string, code string, validFor time.Duration) error {
	log.Printf("mail: verification code for %s <%s>: %s (valid %s)", name, email, code, validFor)
	return nil
}

func (dispatcher *LogDispatcher) SendContactMessage(ctx context.Context, name string, email string, subject string, message string, issueType string) error {
	log.Printf("mail: contact message from %s <%s> subject=%q issueType=%q", name, email, subject, issueType)
	return nil
}
