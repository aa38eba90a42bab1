package domain

import "time"

type Cart struct {
	ID          string     `json:"id"`
	CustomerID  *string    `json:"customerId,omitempty"`
	AnonymousID *string    `json:"-"`
	State       string     `json:"state"`
	CreatedAt   time.Time  `json:"createdAt"`
	Items       []CartItem `json:"items,omitempty"`
}

// CartItem carries a price snapshot taken from the product at add time.
// Discounts are mutually exclusive in effect: a positive percentage wins
// over a flat amount.
type CartItem struct {
	ID              string    `json:"id"`
	CartID          string    `json:"cartId"`
	ProductID       string    `json:"productId"`
	Name            string    `json:"name"`
	UnitPrice       int64     `json:"unitPrice"`
	Quantity        int       `json:"quantity"`
	DiscountPercent int       `json:"discountPercent,omitempty"`
	DiscountAmount  int64     `json:"discountAmount,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FinalUnitPrice applies the item discount: percentage (rounded) if
// present, else flat amount floored at zero, else the unit price.
func (i CartItem) FinalUnitPrice() int64 {
	switch {
	case i.DiscountPercent > 0:
		return (i.UnitPrice*int64(100-i.DiscountPercent) + 50) / 100
	case i.DiscountAmount > 0:
		price := i.UnitPrice - i.DiscountAmount
		if price < 0 {
			price = 0
		}
		return price
	}
	return i.UnitPrice
}

func (i CartItem) LineTotal() int64 {
	return i.FinalUnitPrice() * int64(i.Quantity)
}

func (c Cart) TotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

func (c Cart) TotalQuantity() int {
	qty := 0
	for _, item := range c.Items {
		qty += item.Quantity
	}
	return qty
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
