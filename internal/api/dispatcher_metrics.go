package api

import (
	"context"
	"time"

	"github.com/goplanner/goplanner/internal/metrics"
)

// countingDispatcher counts every outgoing notification and its failures
// before delegating to the real dispatcher.
type countingDispatcher struct {
	next      NotificationDispatcher
	collector *metrics.Collector
}

func instrumentDispatcher(next NotificationDispatcher, collector *metrics.Collector) NotificationDispatcher {
	return &countingDispatcher{next: next, collector: collector}
}

func (dispatcher *countingDispatcher) SendVerificationCode(ctx context.Context, email string, name string, code string, validFor time.Duration) error {
	return dispatcher.record(dispatcher.next.SendVerificationCode(ctx, email, name, code, validFor))
}

func (dispatcher *countingDispatcher) SendContactMessage(ctx context.Context, name string, email string, subject string, message string, issueType string) error {
	return dispatcher.record(dispatcher.next.SendContactMessage(ctx, name, email, subject, message, issueType))
}

func (dispatcher *countingDispatcher) record(err error) error {
	if err != nil {
		dispatcher.collector.RecordEmailFailure()
		return err
	}
	dispatcher.collector.RecordEmailSent()
	return nil
}
