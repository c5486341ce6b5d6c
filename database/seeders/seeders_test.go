package seeders_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
	"github.com/Eswaramoorthy-2004/my-ecom-store/config"
	"github.com/Eswaramoorthy-2004/my-ecom-store/database/seeders"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/auth"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/testkit"
)

func TestCreateAdminIsIdempotent(t *testing.T) {
	db := testkit.DB(t)

	require.NoError(t, seeders.CreateAdmin(db, "root@shop.io", "s3cret"))
	require.NoError(t, seeders.CreateAdmin(db, "root@shop.io", "other"))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, auth.RoleAdmin, users[0].Role)
	assert.True(t, auth.CheckPassword(users[0].Password, "s3cret"))
}

func TestRunAllSeedsEmptyCatalogOnce(t *testing.T) {
	db := testkit.DB(t)
	config.Set("ADMIN_EMAIL", "boss@shop.io")
	config.Set("ADMIN_PASSWORD", "pw")
	t.Cleanup(func() {
		config.Set("ADMIN_EMAIL", "")
		config.Set("ADMIN_PASSWORD", "")
	})

	var out bytes.Buffer
	require.NoError(t, seeders.RunAll(db, &out))
	require.NoError(t, seeders.RunAll(db, &out))

	var products, admins int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", auth.RoleAdmin).Count(&admins).Error)
	assert.EqualValues(t, 4, products)
	assert.EqualValues(t, 1, admins)
	assert.Contains(t, out.String(), "admin")
}
