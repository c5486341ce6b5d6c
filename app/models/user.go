package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/auth"
)

// User is a registered shopper or administrator. Rows are never updated
// after registration.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      auth.Role `gorm:"size:20;not null;default:customer" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the session snapshot for u.
func (u User) Identity() auth.Identity {
	return auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

// BeforeSave rejects roles other than customer and admin.
func (u *User) BeforeSave(*gorm.DB) error {
	if !u.Role.Valid() {
		return fmt.Errorf("user %s: invalid role %q", u.Email, u.Role)
	}
	return nil
}
