package models

import (
	"fmt"
	"math"
)

// CartItem is one product line in a user's cart. Quantity is always at
// least 1; a line that would drop to zero is deleted instead.
type CartItem struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ProductID uint `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
}

// CartLine is a cart item joined with its product.
type CartLine struct {
	ProductID   uint    `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Quantity    int     `json:"quantity"`
}

// LineCents is price × quantity in integer cents.
func (l CartLine) LineCents() int64 {
	return ToCents(l.Price) * int64(l.Quantity)
}

// ToCents converts a two-decimal amount to cents, rounding half away from
// zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FormatCents renders cents as "12.34".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
