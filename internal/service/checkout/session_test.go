package checkout

import (
	"testing"
	"time"
)

func TestSessionStoreExpiresIdleSession(t *testing.T) {
	st := newSessionStore(time.Hour)
	current := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return current }

	st.mu.Lock()
	st.locked("anon:a").step = StepPayment
	st.mu.Unlock()

	current = current.Add(2 * time.Hour)

	st.mu.Lock()
	sess := st.locked("anon:a")
	st.mu.Unlock()
	if sess.step != StepAddress {
		t.Fatalf("expired session should start over at the address step")
	}
}

func TestSessionStoreSweepsAbandonedKeys(t *testing.T) {
	st := newSessionStore(time.Hour)
	current := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return current }

	st.mu.Lock()
	st.locked("anon:a")
	st.locked("anon:b")
	st.mu.Unlock()

	current = current.Add(3 * time.Hour)

	st.mu.Lock()
	st.locked("anon:c")
	remaining := len(st.sessions)
	st.mu.Unlock()
	if remaining != 1 {
		t.Fatalf("abandoned sessions should be swept, %d remain", remaining)
	}
}

func TestSessionStoreKeepsActiveSession(t *testing.T) {
	st := newSessionStore(time.Hour)
	current := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return current }

	st.mu.Lock()
	st.locked("anon:a").step = StepPayment
	st.mu.Unlock()

	// Touched within the TTL on every access, the session never expires.
	for i := 0; i < 4; i++ {
		current = current.Add(45 * time.Minute)
		st.mu.Lock()
		sess := st.locked("anon:a")
		st.mu.Unlock()
		if sess.step != StepPayment {
			t.Fatalf("active session lost at access %d", i)
		}
	}
}
