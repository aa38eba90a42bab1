package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tsrfashion-backend/internal/domain"
	"tsrfashion-backend/internal/localstore"
	productrepo "tsrfashion-backend/internal/repository/product"
	ordersvc "tsrfashion-backend/internal/service/order"
)

// Apply inserts the storefront catalogue for manual testing. The repository
// upserts by slug, so reruns are idempotent.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []domain.Product{
		{
			Slug:            "classic-polo-navy",
			Name:            "Classic Polo - Navy",
			Category:        "polos",
			Description:     "Pique cotton polo with a two-button placket",
			Price:           1450,
			DiscountPercent: 10,
			Images:          []string{"/images/polo-navy-front.jpg", "/images/polo-navy-back.jpg"},
		},
		{
			Slug:     "slim-chino-khaki",
			Name:     "Slim Chino - Khaki",
			Category: "trousers",
			Price:    2200,
			Images:   []string{"/images/chino-khaki.jpg"},
		},
		{
			Slug:           "oxford-shirt-white",
			Name:           "Oxford Shirt - White",
			Category:       "shirts",
			Description:    "Button-down oxford in breathable cotton",
			Price:          1850,
			DiscountAmount: 150,
			Images:         []string{"/images/oxford-white.jpg"},
		},
		{
			Slug:     "crew-tee-black",
			Name:     "Crew Tee - Black",
			Category: "t-shirts",
			Price:    650,
			Images:   []string{"/images/tee-black.jpg"},
		},
		{
			Slug:            "denim-jacket-indigo",
			Name:            "Denim Jacket - Indigo",
			Category:        "jackets",
			Description:     "Heavyweight denim with copper hardware",
			Price:           3900,
			DiscountPercent: 15,
			Images:          []string{"/images/denim-indigo.jpg"},
		},
	}

	repo := productrepo.NewPostgres(pool, nil)
	for _, p := range products {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	return nil
}

// WarmSampleOrders loads demonstration orders into the local cache so the
// tracking pages have something to show before any real order exists.
func WarmSampleOrders(local *localstore.Store, now time.Time) {
	for _, o := range SampleOrders(now) {
		local.Put(ordersvc.SampleNamespace, "order:"+strings.ToLower(o.Number), o)
	}
}

// SampleOrders builds a small set of orders in varied delivery states.
func SampleOrders(now time.Time) []domain.Order {
	build := func(number string, daysAgo int, advanceTo string, total int64, items int) domain.Order {
		placed := now.AddDate(0, 0, -daysAgo)
		est := placed.AddDate(0, 0, 5)
		o := domain.Order{
			Number:            number,
			PlacedAt:          placed,
			TotalAmount:       total,
			ItemsCount:        items,
			Status:            domain.StatusProcessing,
			PaymentMethod:     "cod",
			EstimatedDelivery: &est,
			Shipping: domain.ShippingDetails{
				FullName:   "Sample Customer",
				Email:      "sample@example.com",
				Phone:      "01700000000",
				City:       "Dhaka",
				PostalCode: "1207",
				Street:     "House 7, Road 2",
			},
			History: domain.NewTimeline(placed),
		}
		if advanceTo != "" {
			o.Advance(advanceTo, placed.AddDate(0, 0, 2))
		}
		return o
	}

	return []domain.Order{
		build("TSR-SAMPLE0001", 2, "", 2095, 2),
		build("TSR-SAMPLE0002", 6, domain.StatusShipped, 3900, 1),
		build("TSR-SAMPLE0003", 12, domain.StatusDelivered, 650, 1),
	}
}
