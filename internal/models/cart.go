package models

import "github.com/shopspring/decimal"

// CartItem is a checkout-ready line item derived from a ticket and its play
type CartItem struct {
	ProductID     int             `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Desc          string          `json:"desc"`
	Qty           int             `json:"qty"`
	ProductImgURL string          `json:"product_img_url,omitempty"`
}

// Subtotal returns price × qty
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// CheckoutItem is one line of a checkout request
type CheckoutItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// CheckoutItemFromCart maps a cart line to the checkout request shape
func CheckoutItemFromCart(item CartItem) CheckoutItem {
	return CheckoutItem{
		Name:        item.Name,
		Description: item.Desc,
		UnitPrice:   item.Price,
		Quantity:    item.Qty,
	}
}

// CheckoutSession is the provider's handle for a pending payment
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}
