package models

// Cart models for Redis session-based storage

// DeliveryFee is the flat delivery charge applied once per order, in INR.
const DeliveryFee = 150

type CartItem struct {
	ID       string  `json:"id" redis:"id"` // merchandise/variant identifier
	Slug     string  `json:"slug" redis:"slug"`
	Title    string  `json:"title" redis:"title"`
	Price    float64 `json:"price" redis:"price"`
	Image    string  `json:"image" redis:"image"`
	Quantity int     `json:"quantity" redis:"quantity"`
}

// Cart holds the mutable cart state for one storefront session. Item totals
// and counts are always derived from Items, never stored; only the coupon
// discount is snapshotted at apply time.
type Cart struct {
	SessionID  string     `json:"session_id"`
	Items      []CartItem `json:"items"`
	CouponCode string     `json:"coupon_code"`
	Discount   float64    `json:"discount"`
}

// AddItem merges by merchandise id: an existing line gets its quantity
// incremented, otherwise the item is appended. Quantities below 1 count as 1.
func (c *Cart) AddItem(item CartItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	item.Quantity = quantity
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the matching line; an absent id is a no-op.
func (c *Cart) RemoveItem(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity overwrites the quantity for the matching line. A quantity below
// 1 removes the line instead of keeping a zero-quantity entry.
func (c *Cart) SetQuantity(id string, quantity int) {
	if quantity < 1 {
		c.RemoveItem(id)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart and drops any applied coupon.
func (c *Cart) Clear() {
	c.Items = nil
	c.Discount = 0
	c.CouponCode = ""
}

func (c *Cart) ItemsCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

// Total is subtotal minus discount plus the delivery fee, floored at zero.
// An empty cart carries no delivery fee.
func (c *Cart) Total() float64 {
	total := c.Subtotal() - c.Discount
	if len(c.Items) > 0 {
		total += DeliveryFee
	}
	if total < 0 {
		return 0
	}
	return total
}

// CartView is the JSON shape returned to clients: the raw cart state plus the
// derived totals, recomputed on every read.
type CartView struct {
	Cart
	ItemsCount    int     `json:"items_count"`
	SubtotalValue float64 `json:"subtotal"`
	TotalValue    float64 `json:"total"`
}

func (c *Cart) View() CartView {
	return CartView{
		Cart:          *c,
		ItemsCount:    c.ItemsCount(),
		SubtotalValue: c.Subtotal(),
		TotalValue:    c.Total(),
	}
}

type AddToCartRequest struct {
	ID       string  `json:"id" binding:"required"`
	Slug     string  `json:"slug"`
	Title    string  `json:"title" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"gte=0"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}
