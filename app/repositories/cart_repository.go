package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
)

// CartRepository handles database operations for CartItem.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository {
	return &CartRepository{db: tx}
}

// Lines joins the user's cart rows with their products. Rows whose product
// no longer exists are dropped by the inner join.
func (r *CartRepository) Lines(ctx context.Context, userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("products.id AS product_id, products.name, products.description, products.price, products.image_url, cart_items.quantity").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("products.id").
		Scan(&lines).Error
	return lines, err
}

// Find returns one cart row. A miss is gorm.ErrRecordNotFound.
func (r *CartRepository) Find(ctx context.Context, userID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Take(&item).Error
	return item, err
}

// Insert adds a new cart row.
func (r *CartRepository) Insert(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

// Increment adds delta to the row's quantity.
func (r *CartRepository) Increment(ctx context.Context, userID, productID uint, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta)).Error
}

// Delete removes one row. Deleting a missing row is not an error.
func (r *CartRepository) Delete(ctx context.Context, userID, productID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

// DeleteByProduct removes every cart row referencing productID.
func (r *CartRepository) DeleteByProduct(ctx context.Context, productID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// Clear removes all of the user's cart rows.
func (r *CartRepository) Clear(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
