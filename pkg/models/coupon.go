package models

import "strings"

// Coupon values below 1 are fractional discounts multiplied by the subtotal;
// values of 1 or more are flat amounts subtracted directly.
var validCoupons = map[string]float64{
	"PASHM10":   0.10,
	"PASHM20":   0.20,
	"WELCOME":   0.15,
	"FIRST50":   0.50,
	"SAVE5":     0.05,
	"FESTIVE":   0.30,
	"PASHM500":  500,
	"OFF100":    100,
	"NEWUSER":   0.10,
	"PASHMLOVE": 0.15,
	"PURE10":    0.10,
	"SAFFRON25": 0.25,
	"NATURAL":   0.12,
	"HEALTHY":   0.08,
	"LUXURY20":  0.20,
	"AYURVED":   0.15,
	"WINTER10":  0.10,
	"SALE40":    0.40,
	"CASHBACK":  0.05,
	"FREESHIP":  150,
	"PASHM30":   0.30,
	"FLAT500":   500,
	"GOLDEN":    0.22,
	"ROYAL15":   0.15,
	"PREMIUM":   0.18,
	"NATURE10":  0.10,
	"KASHMIR20": 0.20,
	"SILK20":    0.20,
	"DIWALI20":  0.20,
}

// ApplyCoupon normalizes the code to uppercase and looks it up in the coupon
// table. On a match the discount is computed against the current subtotal and
// stored along with the code; a later successful apply replaces the previous
// coupon. An unknown code leaves the cart untouched and reports failure.
func (c *Cart) ApplyCoupon(code string) bool {
	upper := strings.ToUpper(code)
	value, ok := validCoupons[upper]
	if !ok {
		return false
	}
	if value < 1 {
		c.Discount = c.Subtotal() * value
	} else {
		c.Discount = value
	}
	c.CouponCode = upper
	return true
}

// RemoveCoupon resets the discount and clears the active code.
func (c *Cart) RemoveCoupon() {
	c.Discount = 0
	c.CouponCode = ""
}
