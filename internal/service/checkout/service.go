package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"tsrfashion-backend/internal/domain"
	"tsrfashion-backend/internal/localstore"
	authsvc "tsrfashion-backend/internal/service/auth"
)

var (
	// ErrShippingRequired blocks confirmation without a captured snapshot
	// and forces the flow back to the address step.
	ErrShippingRequired = errors.New("shipping details required")
	// ErrPaymentRequired blocks confirmation without a payment selection.
	ErrPaymentRequired = errors.New("payment method required")
	// ErrConfirmInFlight rejects a concurrent confirmation for the same
	// idempotency key.
	ErrConfirmInFlight = errors.New("confirmation already in progress")
	// ErrIdempotencyKeyRequired rejects confirmations without a key.
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
)

type cartSvc interface {
	Resolve(ctx context.Context, actor domain.Actor, anonymousID string) (*domain.Cart, error)
	ClearByID(ctx context.Context, cartID string) error
	AttachCustomer(ctx context.Context, cartID, customerID string) error
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
}

type authGateway interface {
	Signup(ctx context.Context, in authsvc.SignupInput) (*domain.Customer, error)
}

type profileSvc interface {
	Sync(ctx context.Context, actor domain.Actor, details domain.ShippingDetails) (*domain.ShippingProfile, error)
	Load(ctx context.Context, actor domain.Actor) (*domain.ShippingProfile, error)
}

// Service orchestrates the two-step checkout flow: address capture, then
// payment selection and order confirmation.
type Service struct {
	sessions *sessionStore
	carts    cartSvc
	orders   orderRepo
	auth     authGateway
	profiles profileSvc
	local    *localstore.Store
	leadDays int
	now      func() time.Time
	logger   *log.Logger
}

// sessionTTL bounds how long an idle checkout session (and its recorded
// idempotency attempts) stays resident.
const sessionTTL = 24 * time.Hour

func New(carts cartSvc, orders orderRepo, auth authGateway, profiles profileSvc, local *localstore.Store, leadDays int, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		sessions: newSessionStore(sessionTTL),
		carts:    carts,
		orders:   orders,
		auth:     auth,
		profiles: profiles,
		local:    local,
		leadDays: leadDays,
		now:      time.Now,
		logger:   logger,
	}
}

// State is the controller view rendered to the client.
type State struct {
	Step     Step                    `json:"step"`
	Shipping *domain.ShippingDetails `json:"shipping,omitempty"`
}

// State reports the current step and shipping snapshot. For authenticated
// actors still on the address step with nothing captured, the saved
// profile pre-fills the response.
func (s *Service) State(ctx context.Context, actor domain.Actor, anonymousID string) State {
	key := sessionKey(actor, anonymousID)
	s.sessions.mu.Lock()
	sess := s.sessions.locked(key)
	out := State{Step: sess.step}
	if sess.shipping != nil {
		shipping := *sess.shipping
		out.Shipping = &shipping
	}
	s.sessions.mu.Unlock()

	if out.Shipping == nil && actor.Authenticated() {
		if profile, err := s.profiles.Load(ctx, actor); err == nil {
			details := profile.Details
			out.Shipping = &details
		}
	}
	return out
}

// SubmitAddress validates the form and, when valid, captures the shipping
// snapshot and advances to the payment step. Field errors are returned
// without any remote call.
func (s *Service) SubmitAddress(ctx context.Context, actor domain.Actor, anonymousID string, form ShippingForm) (map[string]string, error) {
	fieldErrs := ValidateShipping(form, !actor.Authenticated())
	if len(fieldErrs) > 0 {
		return fieldErrs, nil
	}

	details := form.Details()
	if actor.Authenticated() {
		if _, err := s.profiles.Sync(ctx, actor, details); err != nil {
			return nil, fmt.Errorf("save profile: %w", err)
		}
	}

	key := sessionKey(actor, anonymousID)
	s.sessions.mu.Lock()
	sess := s.sessions.locked(key)
	sess.shipping = &details
	sess.password = strings.TrimSpace(form.Password)
	sess.step = StepPayment
	s.sessions.mu.Unlock()
	return nil, nil
}

// EditAddress returns the flow to the address step; the captured snapshot
// is retained for pre-fill.
func (s *Service) EditAddress(actor domain.Actor, anonymousID string) State {
	key := sessionKey(actor, anonymousID)
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()
	sess := s.sessions.locked(key)
	sess.step = StepAddress
	out := State{Step: sess.step}
	if sess.shipping != nil {
		shipping := *sess.shipping
		out.Shipping = &shipping
	}
	return out
}

// Confirm places the order. Guards: captured shipping snapshot (violation
// forces the flow back to the address step), non-empty payment selection,
// non-empty cart. For guests an account is provisioned before any order
// mutation; the cart is cleared only after the order row exists. A
// completed idempotency key replays the stored order number.
func (s *Service) Confirm(ctx context.Context, actor domain.Actor, anonymousID, paymentMethod, note, idemKey string) (string, error) {
	idemKey = strings.TrimSpace(idemKey)
	if idemKey == "" {
		return "", ErrIdempotencyKeyRequired
	}
	paymentMethod = strings.TrimSpace(paymentMethod)

	key := sessionKey(actor, anonymousID)
	s.sessions.mu.Lock()
	sess := s.sessions.locked(key)
	if prev, ok := sess.attempts[idemKey]; ok {
		s.sessions.mu.Unlock()
		if prev.inFlight {
			return "", ErrConfirmInFlight
		}
		return prev.orderNumber, nil
	}
	if sess.shipping == nil {
		sess.step = StepAddress
		s.sessions.mu.Unlock()
		return "", ErrShippingRequired
	}
	if paymentMethod == "" {
		s.sessions.mu.Unlock()
		return "", ErrPaymentRequired
	}
	shipping := *sess.shipping
	password := sess.password
	provisioned := sess.customer
	sess.payment = paymentMethod
	sess.attempts[idemKey] = &attempt{inFlight: true}
	s.sessions.mu.Unlock()

	number, provisioned, err := s.placeOrder(ctx, actor, anonymousID, shipping, password, paymentMethod, note, provisioned)

	s.sessions.mu.Lock()
	sess = s.sessions.locked(key)
	if provisioned != nil {
		// An account provisioned during this attempt survives in the
		// session, so a retry reuses it instead of signing up again.
		sess.customer = provisioned
	}
	if err != nil {
		// The attempt is released so the user can retry with the same key;
		// shipping and payment selections stay captured.
		delete(sess.attempts, idemKey)
		s.sessions.mu.Unlock()
		return "", err
	}
	sess.attempts[idemKey] = &attempt{orderNumber: number}
	sess.step = StepAddress
	sess.shipping = nil
	sess.password = ""
	sess.payment = ""
	sess.customer = nil
	s.sessions.mu.Unlock()
	return number, nil
}

func (s *Service) placeOrder(ctx context.Context, actor domain.Actor, anonymousID string, shipping domain.ShippingDetails, password, paymentMethod, note string, provisioned *domain.Customer) (string, *domain.Customer, error) {
	wasGuest := !actor.Authenticated()
	if wasGuest && provisioned != nil {
		// A prior attempt already created the account and attached the
		// cart; act as that customer instead of signing up again.
		actor = domain.Actor{Customer: provisioned}
		wasGuest = false
	}

	cart, err := s.resolveCart(ctx, actor, anonymousID)
	if err != nil {
		return "", provisioned, err
	}
	if cart.IsEmpty() {
		return "", provisioned, domain.ErrEmptyCart
	}

	if wasGuest {
		actor, err = s.ensureIdentity(ctx, actor, shipping, password)
		if err != nil {
			return "", nil, err
		}
		provisioned = actor.Customer
		if err := s.carts.AttachCustomer(ctx, cart.ID, actor.CustomerID()); err != nil {
			s.logger.Printf("checkout: attach cart %s to customer %s: %v", cart.ID, actor.CustomerID(), err)
		}
		if _, err := s.profiles.Sync(ctx, actor, shipping); err != nil {
			s.logger.Printf("checkout: sync profile customer_id=%s: %v", actor.CustomerID(), err)
		}
	}

	order, err := Build(BuildInput{
		Cart:          *cart,
		Shipping:      shipping,
		PaymentMethod: paymentMethod,
		CustomerID:    actor.CustomerID(),
		Note:          note,
		PlacedAt:      s.now().UTC(),
		LeadDays:      s.leadDays,
	})
	if err != nil {
		return "", provisioned, err
	}

	stored, err := s.persist(ctx, order)
	if err != nil {
		// Cart stays intact; the error is retryable.
		return "", provisioned, fmt.Errorf("store order: %w", err)
	}

	if err := s.carts.ClearByID(ctx, cart.ID); err != nil {
		s.logger.Printf("checkout: clear cart %s after order %s: %v", cart.ID, stored.Number, err)
	}
	if s.local != nil {
		s.local.Put("user:"+actor.CustomerID(), "order:"+strings.ToLower(stored.Number), *stored)
	}
	s.logger.Printf("checkout: order %s placed total=%d items=%d", stored.Number, stored.TotalAmount, stored.ItemsCount)
	return stored.Number, provisioned, nil
}

// resolveCart loads the actor's active cart. When acting as a customer
// provisioned mid-checkout, the cart may still sit under the anonymous ID
// if the attach did not land, so that lookup is tried as well.
func (s *Service) resolveCart(ctx context.Context, actor domain.Actor, anonymousID string) (*domain.Cart, error) {
	cart, err := s.carts.Resolve(ctx, actor, anonymousID)
	if errors.Is(err, domain.ErrNotFound) && actor.Authenticated() && anonymousID != "" {
		cart, err = s.carts.Resolve(ctx, domain.Guest(), anonymousID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

// ensureIdentity provisions an account for guest actors before the order
// is finalized. A duplicate email aborts order creation; the snapshot and
// payment selection survive in the session for retry.
func (s *Service) ensureIdentity(ctx context.Context, actor domain.Actor, shipping domain.ShippingDetails, password string) (domain.Actor, error) {
	if actor.Authenticated() {
		return actor, nil
	}
	customer, err := s.auth.Signup(ctx, authsvc.SignupInput{
		Email:    shipping.Email,
		Password: password,
		FullName: shipping.FullName,
		Phone:    shipping.Phone,
	})
	if err != nil {
		return actor, fmt.Errorf("create account: %w", err)
	}
	return domain.Actor{Customer: customer}, nil
}

// persist retries with regenerated numbers when the repository reports a
// collision.
func (s *Service) persist(ctx context.Context, order domain.Order) (*domain.Order, error) {
	for i := 0; i < 5; i++ {
		stored, err := s.orders.Create(ctx, order)
		if err == nil {
			return stored, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			order.Number = NewOrderNumber()
			continue
		}
		return nil, err
	}
	return nil, errors.New("order number collision")
}

func sessionKey(actor domain.Actor, anonymousID string) string {
	if actor.Authenticated() {
		return "user:" + actor.CustomerID()
	}
	return "anon:" + anonymousID
}
