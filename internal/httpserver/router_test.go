package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tsrfashion-backend/internal/domain"
	authsvc "tsrfashion-backend/internal/service/auth"
	checkoutsvc "tsrfashion-backend/internal/service/checkout"
	contactsvc "tsrfashion-backend/internal/service/contact"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubAuthService struct {
	customer  *domain.Customer
	signupErr error
	loginErr  error
	resolved  domain.Actor
	logoutErr error
}

func (s *stubAuthService) Signup(_ context.Context, _ authsvc.SignupInput) (*domain.Customer, error) {
	return s.customer, s.signupErr
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*domain.Customer, string, string, error) {
	if s.loginErr != nil {
		return nil, "", "", s.loginErr
	}
	return s.customer, "access", "refresh", nil
}

func (s *stubAuthService) IssueTokens(_ context.Context, _ string) (string, string, error) {
	return "access", "refresh", nil
}

func (s *stubAuthService) ResolveActor(_ context.Context, _ string) domain.Actor {
	return s.resolved
}

func (s *stubAuthService) Logout(_ context.Context, _ string) error { return s.logoutErr }

func (s *stubAuthService) UpdateProfileFields(_ context.Context, _, fullName, phone string) (*domain.Customer, error) {
	c := *s.customer
	c.FullName = fullName
	c.Phone = phone
	return &c, nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, _, _, _ string) error { return nil }

func (s *stubAuthService) AccessTTLSeconds() int { return 3600 }

type stubProfileService struct {
	profile *domain.ShippingProfile
}

func (s *stubProfileService) Sync(_ context.Context, _ domain.Actor, details domain.ShippingDetails) (*domain.ShippingProfile, error) {
	return &domain.ShippingProfile{Details: details}, nil
}

func (s *stubProfileService) Load(_ context.Context, _ domain.Actor) (*domain.ShippingProfile, error) {
	if s.profile == nil {
		return nil, domain.ErrNotFound
	}
	return s.profile, nil
}

type stubProductService struct {
	products []domain.Product
	getErr   error
}

func (s *stubProductService) List(_ context.Context, _ string) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubProductService) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for i := range s.products {
		if s.products[i].Slug == slug {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubCartService struct {
	cart *domain.Cart
	err  error
}

func (s *stubCartService) Resolve(_ context.Context, _ domain.Actor, _ string) (*domain.Cart, error) {
	if s.cart == nil {
		return nil, domain.ErrNotFound
	}
	return s.cart, s.err
}

func (s *stubCartService) AddItem(_ context.Context, _ domain.Actor, _, _ string, _ int) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartService) ChangeQuantity(_ context.Context, _ domain.Actor, _, _ string, _ int) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartService) Clear(_ context.Context, _ domain.Actor, _ string) error { return s.err }

type stubCheckoutService struct {
	state      checkoutsvc.State
	fieldErrs  map[string]string
	submitErr  error
	number     string
	confirmErr error
}

func (s *stubCheckoutService) State(_ context.Context, _ domain.Actor, _ string) checkoutsvc.State {
	return s.state
}

func (s *stubCheckoutService) SubmitAddress(_ context.Context, _ domain.Actor, _ string, _ checkoutsvc.ShippingForm) (map[string]string, error) {
	return s.fieldErrs, s.submitErr
}

func (s *stubCheckoutService) EditAddress(_ domain.Actor, _ string) checkoutsvc.State {
	return s.state
}

func (s *stubCheckoutService) Confirm(_ context.Context, _ domain.Actor, _, _, _, _ string) (string, error) {
	return s.number, s.confirmErr
}

type stubOrderService struct {
	order  *domain.Order
	orders []domain.Order
	err    error
}

func (s *stubOrderService) Track(_ context.Context, _ domain.Actor, _ string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.order == nil {
		return nil, domain.ErrNotFound
	}
	return s.order, nil
}

func (s *stubOrderService) Recent(_ context.Context, _ domain.Actor) ([]domain.Order, error) {
	return s.orders, s.err
}

type stubContactService struct {
	fieldErrs map[string]string
	err       error
}

func (s *stubContactService) Submit(_ context.Context, in contactsvc.SubmitInput) (*domain.ContactMessage, map[string]string, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	if len(s.fieldErrs) > 0 {
		return nil, s.fieldErrs, nil
	}
	return &domain.ContactMessage{ID: "msg-1", Name: in.Name}, nil, nil
}

func testDeps() Deps {
	return Deps{
		AuthSvc:     &stubAuthService{customer: &domain.Customer{ID: "cust-1", Email: "user@example.com"}},
		ProfileSvc:  &stubProfileService{},
		ProductSvc:  &stubProductService{},
		CartSvc:     &stubCartService{},
		CheckoutSvc: &stubCheckoutService{},
		OrderSvc:    &stubOrderService{},
		ContactSvc:  &stubContactService{},
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps, nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyzWithoutDatabase(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestBuildRouterRejectsMissingDeps(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.OrderSvc = nil
	if _, err := buildRouter(logDiscard(), nil, deps, nil); err == nil {
		t.Fatalf("expected error for missing dependency")
	}
}
