package migrations

import (
	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/migration"
)

func init() {
	migration.Register("20240101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20240101000001_create_products_table", &CreateProductsTable{})
	migration.Register("20240101000002_create_cart_items_table", &CreateCartItemsTable{})
}

// createTable creates model's table unless it exists. AutoMigrate is avoided
// because it also re-migrates associated tables, and the sqlite migrator
// cannot re-parse the decimal(10,2) price column it wrote.
func createTable(db *gorm.DB, model interface{}) error {
	if db.Migrator().HasTable(model) {
		return nil
	}
	return db.Migrator().CreateTable(model)
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return createTable(db, &models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return createTable(db, &models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: cart_items --------

// CreateCartItemsTable keys cart rows on (user_id, product_id) with foreign
// keys that do not cascade; product deletion clears cart rows itself.
type CreateCartItemsTable struct{}

func (m *CreateCartItemsTable) Up(db *gorm.DB) error {
	return createTable(db, &models.CartItem{})
}

func (m *CreateCartItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items")
}
