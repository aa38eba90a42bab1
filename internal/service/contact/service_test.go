package contact

import (
	"context"
	"testing"

	"tsrfashion-backend/internal/domain"
)

type memoryRepo struct {
	messages []domain.ContactMessage
}

func (m *memoryRepo) Create(_ context.Context, msg domain.ContactMessage) (*domain.ContactMessage, error) {
	msg.ID = "msg-1"
	m.messages = append(m.messages, msg)
	return &msg, nil
}

func TestSubmitValidation(t *testing.T) {
	repo := &memoryRepo{}
	svc := New(repo)

	_, fieldErrs, err := svc.Submit(context.Background(), SubmitInput{Email: "not-an-email"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, field := range []string{"name", "email", "message"} {
		if fieldErrs[field] == "" {
			t.Fatalf("expected %s error, got %v", field, fieldErrs)
		}
	}
	if len(repo.messages) != 0 {
		t.Fatalf("invalid input must not be stored")
	}
}

func TestSubmitNormalizes(t *testing.T) {
	repo := &memoryRepo{}
	svc := New(repo)

	stored, fieldErrs, err := svc.Submit(context.Background(), SubmitInput{
		Name:    "  Karim  ",
		Email:   " Karim@Example.COM ",
		Subject: "Sizing",
		Message: "Does the polo run small?",
	})
	if err != nil || len(fieldErrs) != 0 {
		t.Fatalf("submit failed: %v %v", fieldErrs, err)
	}
	if stored.Name != "Karim" || stored.Email != "karim@example.com" {
		t.Fatalf("input not normalized: %+v", stored)
	}
}
