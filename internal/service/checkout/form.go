package checkout

import (
	"regexp"
	"strings"

	"tsrfashion-backend/internal/domain"
)

var (
	phonePattern  = regexp.MustCompile(`^(\+?880|0)1[3-9]\d{8}$`)
	postalPattern = regexp.MustCompile(`^\d{4,6}$`)
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const passwordMin = 6

// ShippingForm carries the raw address submission. Password fields are
// only relevant for guests creating an account inline.
type ShippingForm struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	City            string `json:"city"`
	PostalCode      string `json:"postalCode"`
	Street          string `json:"street"`
	Apartment       string `json:"apartment"`
	Road            string `json:"road"`
	Notes           string `json:"notes"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// ValidateShipping schema-checks the form and returns field-keyed error
// messages. An empty map means the form is valid. No network call happens
// before validation passes.
func ValidateShipping(form ShippingForm, guest bool) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(form.FullName) == "" {
		errs["fullName"] = "full name is required"
	}
	email := strings.TrimSpace(form.Email)
	if email == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "email is invalid"
	}
	phone := strings.TrimSpace(form.Phone)
	if phone == "" {
		errs["phone"] = "phone is required"
	} else if !phonePattern.MatchString(phone) {
		errs["phone"] = "phone must be a valid mobile number"
	}
	if strings.TrimSpace(form.City) == "" {
		errs["city"] = "city is required"
	}
	postal := strings.TrimSpace(form.PostalCode)
	if postal == "" {
		errs["postalCode"] = "postal code is required"
	} else if !postalPattern.MatchString(postal) {
		errs["postalCode"] = "postal code must be 4-6 digits"
	}
	if strings.TrimSpace(form.Street) == "" {
		errs["street"] = "street address is required"
	}

	if guest {
		if len(strings.TrimSpace(form.Password)) < passwordMin {
			errs["password"] = "password must be at least 6 characters"
		} else if form.Password != form.ConfirmPassword {
			errs["confirmPassword"] = "passwords do not match"
		}
	}

	return errs
}

// Details converts the validated form into the shipping snapshot reused by
// profile persistence and order creation.
func (f ShippingForm) Details() domain.ShippingDetails {
	return domain.ShippingDetails{
		FullName:   strings.TrimSpace(f.FullName),
		Email:      strings.TrimSpace(strings.ToLower(f.Email)),
		Phone:      strings.TrimSpace(f.Phone),
		City:       strings.TrimSpace(f.City),
		PostalCode: strings.TrimSpace(f.PostalCode),
		Street:     strings.TrimSpace(f.Street),
		Apartment:  strings.TrimSpace(f.Apartment),
		Road:       strings.TrimSpace(f.Road),
		Notes:      strings.TrimSpace(f.Notes),
	}
}
