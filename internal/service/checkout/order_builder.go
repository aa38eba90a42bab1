package checkout

import (
	"strings"
	"time"

	"tsrfashion-backend/internal/domain"

	"github.com/google/uuid"
)

// BuildInput is everything the order derivation needs; Build has no side
// effects.
type BuildInput struct {
	Cart          domain.Cart
	Shipping      domain.ShippingDetails
	PaymentMethod string
	CustomerID    string
	Note          string
	PlacedAt      time.Time
	LeadDays      int
}

// Build derives a priced, timestamped, numbered order from the cart and
// the validated checkout selections. The initial timeline has Placed and
// Processing complete; the current status is Processing.
func Build(in BuildInput) (domain.Order, error) {
	if in.Cart.IsEmpty() {
		return domain.Order{}, domain.ErrEmptyCart
	}

	order := domain.Order{
		Number:        NewOrderNumber(),
		PlacedAt:      in.PlacedAt,
		TotalAmount:   in.Cart.TotalAmount(),
		ItemsCount:    in.Cart.TotalQuantity(),
		Status:        domain.StatusProcessing,
		PaymentMethod: in.PaymentMethod,
		Note:          in.Note,
		Shipping:      in.Shipping,
		History:       domain.NewTimeline(in.PlacedAt),
	}
	if in.CustomerID != "" {
		id := in.CustomerID
		order.CustomerID = &id
	}
	if in.LeadDays > 0 {
		est := in.PlacedAt.AddDate(0, 0, in.LeadDays)
		order.EstimatedDelivery = &est
	}
	return order, nil
}

// NewOrderNumber generates an opaque human-readable order token. It is not
// sequential; uniqueness is enforced at persistence with regeneration on
// conflict.
func NewOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TSR-" + raw[:10]
}
