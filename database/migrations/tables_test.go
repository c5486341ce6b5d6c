package migrations_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
	"github.com/Eswaramoorthy-2004/my-ecom-store/database/migrations"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/database"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/migration"
)

func TestMigrateSQLite(t *testing.T) {
	db, err := database.Open(context.Background(), "sqlite", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	var out bytes.Buffer
	r := migration.New(db, &out)
	require.NoError(t, r.Run())

	for _, model := range []interface{}{&models.User{}, &models.Product{}, &models.CartItem{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}

	out.Reset()
	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCartItemsUpIsIdempotent(t *testing.T) {
	db, err := database.Open(context.Background(), "sqlite", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, (&migrations.CreateUsersTable{}).Up(db))
	require.NoError(t, (&migrations.CreateProductsTable{}).Up(db))
	require.NoError(t, (&migrations.CreateCartItemsTable{}).Up(db))
	require.NoError(t, (&migrations.CreateCartItemsTable{}).Up(db))

	u := models.User{Email: "a@shop.io", Password: "x", Role: "customer"}
	p := models.Product{Name: "Mug", Price: 12}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Create(&p).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 2}).Error)

	var n int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
