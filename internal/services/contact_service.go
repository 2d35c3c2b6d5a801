package services

import (
	"context"
	"strings"
)

// ContactDispatcher relays contact-form submissions to the support inbox.
type ContactDispatcher interface {
	SendContactMessage(ctx context.Context, name string, email string, subject string, message string, issueType string) error
}

type ContactService struct {
	dispatcher ContactDispatcher
}

func NewContactService(dispatcher ContactDispatcher) *ContactService {
	return &ContactService{dispatcher: dispatcher}
}

// Submit validates and relays a contact form submission. issueType is a
// free-form client hint and stays optional.
func (service *ContactService) Submit(ctx context.Context, name string, email string, subject string, message string, issueType string) error {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)

	if name == "" || subject == "" || message == "" {
		return validationf("name, email, subject and message are required")
	}
	if !emailPattern.MatchString(email) {
		return validationf("a valid email is required")
	}

	if err := service.dispatcher.SendContactMessage(ctx, name, email, subject, message, strings.TrimSpace(issueType)); err != nil {
		return &DispatchError{Err: err}
	}
	return nil
}
