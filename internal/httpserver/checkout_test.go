package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tsrfashion-backend/internal/domain"
	checkoutsvc "tsrfashion-backend/internal/service/checkout"
)

func TestSubmitAddressHandler_FieldErrors(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutService{fieldErrs: map[string]string{"phone": "phone is invalid"}}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/checkout/address", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "phone is invalid") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSubmitAddressHandler_Advances(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutService{state: checkoutsvc.State{Step: checkoutsvc.StepPayment}}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/checkout/address", strings.NewReader(`{"fullName":"Rahim"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"step":"payment"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestConfirmHandler_Created(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutService{number: "TSR-1A2B3C4D5E"}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/checkout/confirm", strings.NewReader(`{"paymentMethod":"cod"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "key-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "TSR-1A2B3C4D5E") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestConfirmHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"missing key", checkoutsvc.ErrIdempotencyKeyRequired, http.StatusBadRequest},
		{"no shipping", checkoutsvc.ErrShippingRequired, http.StatusConflict},
		{"no payment", checkoutsvc.ErrPaymentRequired, http.StatusUnprocessableEntity},
		{"in flight", checkoutsvc.ErrConfirmInFlight, http.StatusConflict},
		{"empty cart", domain.ErrEmptyCart, http.StatusConflict},
		{"duplicate email", domain.ErrAlreadyExists, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deps := testDeps()
			deps.CheckoutSvc = &stubCheckoutService{confirmErr: tc.err}
			router := newTestRouter(t, deps)

			req := httptest.NewRequest(http.MethodPost, "/checkout/confirm", strings.NewReader(`{"paymentMethod":"cod"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Idempotency-Key", "key-1")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTrackOrderHandler_NotFound(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/orders/TSR-MISSING000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetCartHandler_EmptyWithoutCart(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"totalQuantity":0`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestContactHandler_FieldErrors(t *testing.T) {
	deps := testDeps()
	deps.ContactSvc = &stubContactService{fieldErrs: map[string]string{"email": "email is required"}}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/support/contact", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
}
