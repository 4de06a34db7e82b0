package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/akreem/alliance/internal/domain"
)

// ContactService relays customer enquiries to the upstream contact endpoint.
type ContactService struct {
	api domain.ListingsAPI
}

func NewContactService(api domain.ListingsAPI) *ContactService {
	return &ContactService{api: api}
}

// Submit validates the required fields locally (name, email, message) and
// returns the upstream's confirmation message.
func (s *ContactService) Submit(ctx context.Context, form domain.ContactForm) (string, error) {
	if strings.TrimSpace(form.Name) == "" ||
		strings.TrimSpace(form.Email) == "" ||
		strings.TrimSpace(form.Message) == "" {
		return "", fmt.Errorf("contact: name, email and message are required")
	}
	payload, err := s.api.SubmitContact(ctx, form)
	if err != nil {
		return "", fmt.Errorf("contact: %w", err)
	}
	msg := lookupStr(payload, "message")
	if msg == "" {
		msg = "Contact form submitted successfully"
	}
	return msg, nil
}
