package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"tsrfashion-backend/internal/domain"
	custrepo "tsrfashion-backend/internal/repository/customer"
	tokenrepo "tsrfashion-backend/internal/repository/token"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles signup/login and actor resolution for requests.
type Service struct {
	repo        custrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
	logger      *log.Logger
}

// New creates a Service with sane defaults.
func New(repo custrepo.Repository, tokens tokenrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 6,
		logger:      logger,
	}
}

// SignupInput captures fields expected by account creation, both explicit
// and the implicit guest-checkout variant.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// Signup registers a new customer.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Customer, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, errors.New("email required")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.Create(ctx, domain.Customer{
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     strings.TrimSpace(in.FullName),
		Phone:        strings.TrimSpace(in.Phone),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("auth: signup customer_id=%s", customer.ID)
	return customer, nil
}

// Login validates credentials and returns issued tokens plus the customer.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Customer, string, string, error) {
	password = strings.TrimSpace(password)
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, c.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, c.ID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return c, access, refresh, nil
}

// IssueTokens issues a fresh access/refresh pair for an existing customer,
// used when guest checkout provisions an account inline.
func (s *Service) IssueTokens(ctx context.Context, customerID string) (string, string, error) {
	access, err := s.tokens.Issue(ctx, customerID, "access", s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, customerID, "refresh", s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ResolveActor classifies the request identity from a bearer token. Any
// failure degrades to guest: actor resolution must never block checkout.
func (s *Service) ResolveActor(ctx context.Context, token string) domain.Actor {
	if strings.TrimSpace(token) == "" {
		return domain.Guest()
	}
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return domain.Guest()
	}
	c, err := s.repo.GetByID(ctx, meta.CustomerID)
	if err != nil {
		s.logger.Printf("auth: resolve actor customer_id=%s error=%v", meta.CustomerID, err)
		return domain.Guest()
	}
	return domain.Actor{Customer: c}
}

// UpdateProfileFields changes the mutable account fields.
func (s *Service) UpdateProfileFields(ctx context.Context, customerID, fullName, phone string) (*domain.Customer, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, errors.New("full name required")
	}
	return s.repo.UpdateFields(ctx, customerID, fullName, strings.TrimSpace(phone))
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, customerID, current, next string) error {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(strings.TrimSpace(current))); err != nil {
		return ErrInvalidCredentials
	}
	next = strings.TrimSpace(next)
	if err := validatePassword(next, s.passwordMin); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, customerID, string(hashed))
}

// Logout revokes the given access token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidToken
	}
	if err := s.tokens.Revoke(ctx, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func validatePassword(p string, min int) error {
	if len(strings.TrimSpace(p)) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	return nil
}
