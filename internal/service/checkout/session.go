package checkout

import (
	"sync"
	"time"

	"tsrfashion-backend/internal/domain"
)

// Step is a checkout state. Confirmation exits the flow entirely, so there
// is no third state.
type Step string

const (
	StepAddress Step = "address"
	StepPayment Step = "payment"
)

type attempt struct {
	inFlight    bool
	orderNumber string
}

// session holds the per-checkout state: the current step, the captured
// shipping snapshot, the guest credential, the payment selection, the
// account provisioned for a guest mid-confirmation, and the confirmation
// attempts keyed by idempotency key.
type session struct {
	step      Step
	shipping  *domain.ShippingDetails
	password  string
	payment   string
	customer  *domain.Customer
	attempts  map[string]*attempt
	touchedAt time.Time
}

type sessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*session
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// locked returns the session for key, creating it in the address step.
// Callers must hold s.mu. Sessions idle longer than the TTL expire on
// access, with a periodic full sweep so abandoned keys do not accumulate.
func (s *sessionStore) locked(key string) *session {
	now := s.now()

	if s.ttl > 0 && now.Sub(s.lastSweep) >= s.ttl/4 {
		for k, sess := range s.sessions {
			if now.Sub(sess.touchedAt) > s.ttl {
				delete(s.sessions, k)
			}
		}
		s.lastSweep = now
	}

	sess := s.sessions[key]
	if sess != nil && s.ttl > 0 && now.Sub(sess.touchedAt) > s.ttl {
		delete(s.sessions, key)
		sess = nil
	}
	if sess == nil {
		sess = &session{step: StepAddress, attempts: make(map[string]*attempt)}
		s.sessions[key] = sess
	}
	sess.touchedAt = now
	return sess
}
