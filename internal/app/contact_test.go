package app_test

import (
	"context"
	"testing"

	"github.com/akreem/alliance/internal/app"
	"github.com/akreem/alliance/internal/domain"
)

func TestContactSubmit(t *testing.T) {
	var relayed domain.ContactForm
	api := &fakeAPI{
		contactFn: func(ctx context.Context, form domain.ContactForm) (map[string]any, error) {
			relayed = form
			return map[string]any{"message": "Merci, nous vous contacterons"}, nil
		},
	}
	c := app.NewContactService(api)

	msg, err := c.Submit(context.Background(), domain.ContactForm{
		Name: "Amel", Email: "amel@alliance.tn", Message: "Visite possible?",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if msg != "Merci, nous vous contacterons" {
		t.Fatalf("msg = %q", msg)
	}
	if relayed.Email != "amel@alliance.tn" {
		t.Fatalf("relayed = %+v", relayed)
	}
}

func TestContactSubmitDefaultsMessage(t *testing.T) {
	api := &fakeAPI{
		contactFn: func(ctx context.Context, form domain.ContactForm) (map[string]any, error) {
			return map[string]any{"success": true}, nil
		},
	}
	c := app.NewContactService(api)

	msg, err := c.Submit(context.Background(), domain.ContactForm{
		Name: "Amel", Email: "amel@alliance.tn", Message: "Bonjour",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if msg != "Contact form submitted successfully" {
		t.Fatalf("msg = %q", msg)
	}
}

func TestContactSubmitValidatesLocally(t *testing.T) {
	hit := false
	api := &fakeAPI{
		contactFn: func(ctx context.Context, form domain.ContactForm) (map[string]any, error) {
			hit = true
			return nil, nil
		},
	}
	c := app.NewContactService(api)

	forms := []domain.ContactForm{
		{Email: "a@b.tn", Message: "m"},
		{Name: "Amel", Message: "m"},
		{Name: "Amel", Email: "a@b.tn", Message: "   "},
	}
	for _, f := range forms {
		if _, err := c.Submit(context.Background(), f); err == nil {
			t.Fatalf("form %+v accepted", f)
		}
	}
	if hit {
		t.Fatal("invalid form reached the upstream")
	}
}
