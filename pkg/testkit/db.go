// Package testkit provides fixtures shared by package tests: a migrated
// in-memory database, session managers and a cookie-keeping HTTP client.
package testkit

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/Eswaramoorthy-2004/my-ecom-store/database/migrations"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/auth"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/database"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/migration"
)

// DB returns a private in-memory SQLite database with every migration
// applied. It is closed when t finishes.
func DB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(context.Background(), "sqlite", "file::memory:")
	require.NoError(t, err, "testkit: open sqlite")
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migration.New(db, io.Discard).Run(), "testkit: migrate")
	return db
}

// CreateUser inserts a user with a real bcrypt hash of password.
func CreateUser(t testing.TB, db *gorm.DB, email, password string, role auth.Role) models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	u := models.User{Email: email, Password: hash, Role: role}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// CreateProduct inserts a product priced at price.
func CreateProduct(t testing.TB, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()

	p := models.Product{Name: name, Description: name + " description", Price: price, ImageURL: "/img/" + name + ".png"}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// CartQuantity returns the quantity of the (user, product) row, or 0.
func CartQuantity(t testing.TB, db *gorm.DB, userID, productID uint) int {
	t.Helper()

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ? AND product_id = ?", userID, productID).Find(&items).Error)
	if len(items) == 0 {
		return 0
	}
	return items[0].Quantity
}

// CartRows counts every cart row matching query.
func CartRows(t testing.TB, db *gorm.DB, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.CartItem{}).Where(query, args...).Count(&n).Error)
	return n
}
