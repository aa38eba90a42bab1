package contact

import (
	"context"
	"regexp"
	"strings"

	"tsrfashion-backend/internal/domain"
	contactrepo "tsrfashion-backend/internal/repository/contact"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Service struct {
	repo contactrepo.Repository
}

func New(repo contactrepo.Repository) *Service {
	return &Service{repo: repo}
}

type SubmitInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate returns per-field messages; an empty map means the input is
// acceptable.
func (in SubmitInput) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "name is required"
	}
	if email := strings.TrimSpace(in.Email); email == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "email is invalid"
	}
	if strings.TrimSpace(in.Message) == "" {
		errs["message"] = "message is required"
	}
	return errs
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.ContactMessage, map[string]string, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return nil, errs, nil
	}
	stored, err := s.repo.Create(ctx, domain.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	})
	if err != nil {
		return nil, nil, err
	}
	return stored, nil, nil
}
