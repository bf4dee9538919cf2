package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redisclient "github.com/redis/go-redis/v9"

	"github.com/pashm-co/storefront-api/pkg/models"
)

// Session cart storage. The cart is the server-side source of truth for a
// browser session: raw state only (lines and the applied coupon), totals are
// recomputed from items on every load.

// cartTTL keeps carts alive across page reloads without letting stale
// sessions accumulate forever.
const cartTTL = 7 * 24 * time.Hour

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func cartItemKey(sessionID, itemID string) string {
	return fmt.Sprintf("cart:%s:item:%s", sessionID, itemID)
}

// GetCart loads the cart for a session, returning an empty cart when none
// exists yet.
func GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	client := RedisClient()
	defer client.Close()

	return loadCart(ctx, client, sessionID)
}

func loadCart(ctx context.Context, client *redisclient.Client, sessionID string) (*models.Cart, error) {
	cart := &models.Cart{SessionID: sessionID}

	cartData, err := client.HGetAll(ctx, cartKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	if code, ok := cartData["coupon_code"]; ok {
		cart.CouponCode = code
	}
	if discountStr, ok := cartData["discount"]; ok {
		if discount, err := strconv.ParseFloat(discountStr, 64); err == nil {
			cart.Discount = discount
		}
	}

	itemKeys, err := client.Keys(ctx, cartItemKey(sessionID, "*")).Result()
	if err != nil {
		return nil, err
	}

	for _, itemKey := range itemKeys {
		itemData, err := client.HGetAll(ctx, itemKey).Result()
		if err != nil {
			continue
		}

		item := models.CartItem{
			ID:    itemData["id"],
			Slug:  itemData["slug"],
			Title: itemData["title"],
			Image: itemData["image"],
		}
		if price, err := strconv.ParseFloat(itemData["price"], 64); err == nil {
			item.Price = price
		}
		if qty, err := strconv.Atoi(itemData["quantity"]); err == nil {
			item.Quantity = qty
		}
		if item.ID == "" || item.Quantity < 1 {
			continue
		}
		cart.Items = append(cart.Items, item)
	}

	return cart, nil
}

func saveCart(ctx context.Context, client *redisclient.Client, cart *models.Cart) error {
	key := cartKey(cart.SessionID)

	cartData := map[string]interface{}{
		"coupon_code": cart.CouponCode,
		"discount":    fmt.Sprintf("%.2f", cart.Discount),
	}
	if err := client.HSet(ctx, key, cartData).Err(); err != nil {
		return err
	}
	client.Expire(ctx, key, cartTTL)

	for _, item := range cart.Items {
		itemKey := cartItemKey(cart.SessionID, item.ID)
		itemData := map[string]interface{}{
			"id":       item.ID,
			"slug":     item.Slug,
			"title":    item.Title,
			"price":    fmt.Sprintf("%.2f", item.Price),
			"image":    item.Image,
			"quantity": strconv.Itoa(item.Quantity),
		}
		if err := client.HSet(ctx, itemKey, itemData).Err(); err != nil {
			return err
		}
		client.Expire(ctx, itemKey, cartTTL)
	}

	return nil
}

// AddToCart adds or merges an item and returns the updated cart.
func AddToCart(ctx context.Context, sessionID string, item models.CartItem, quantity int) (*models.Cart, error) {
	client := RedisClient()
	defer client.Close()

	cart, err := loadCart(ctx, client, sessionID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(item, quantity)
	if err := saveCart(ctx, client, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateCartItem overwrites an item's quantity; zero or less removes it.
func UpdateCartItem(ctx context.Context, sessionID, itemID string, quantity int) (*models.Cart, error) {
	client := RedisClient()
	defer client.Close()

	cart, err := loadCart(ctx, client, sessionID)
	if err != nil {
		return nil, err
	}

	cart.SetQuantity(itemID, quantity)
	if quantity < 1 {
		client.Del(ctx, cartItemKey(sessionID, itemID))
	}
	if err := saveCart(ctx, client, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveFromCart drops an item from the cart; an absent id is a no-op.
func RemoveFromCart(ctx context.Context, sessionID, itemID string) (*models.Cart, error) {
	return UpdateCartItem(ctx, sessionID, itemID, 0)
}

// ApplyCoupon applies a coupon code to the session cart. The boolean reports
// whether the code was recognized; an unknown code leaves the cart unchanged.
func ApplyCoupon(ctx context.Context, sessionID, code string) (*models.Cart, bool, error) {
	client := RedisClient()
	defer client.Close()

	cart, err := loadCart(ctx, client, sessionID)
	if err != nil {
		return nil, false, err
	}

	if !cart.ApplyCoupon(code) {
		return cart, false, nil
	}
	if err := saveCart(ctx, client, cart); err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

// RemoveCoupon clears the active coupon from the session cart.
func RemoveCoupon(ctx context.Context, sessionID string) (*models.Cart, error) {
	client := RedisClient()
	defer client.Close()

	cart, err := loadCart(ctx, client, sessionID)
	if err != nil {
		return nil, err
	}

	cart.RemoveCoupon()
	if err := saveCart(ctx, client, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart removes all cart state for the session. Item keys are matched
// with the delimited pattern so a session id that prefixes another session's
// id never touches the neighbor's keys.
func ClearCart(ctx context.Context, sessionID string) error {
	client := RedisClient()
	defer client.Close()

	keys, err := client.Keys(ctx, cartItemKey(sessionID, "*")).Result()
	if err != nil {
		return err
	}
	keys = append(keys, cartKey(sessionID))
	return client.Del(ctx, keys...).Err()
}

// CartSessions adapts the package-level cart functions to the checkout
// service's CartStore interface.
type CartSessions struct{}

func (CartSessions) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	return GetCart(ctx, sessionID)
}

func (CartSessions) ClearCart(ctx context.Context, sessionID string) error {
	return ClearCart(ctx, sessionID)
}
