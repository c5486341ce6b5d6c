package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// All returns every product in id order.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Order("id").Find(&products).Error
	return products, err
}

// Find looks up a product by id. A miss is gorm.ErrRecordNotFound.
func (r *ProductRepository) Find(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	return product, err
}

// Create inserts p and fills its id.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Update overwrites name, description, price and image_url of product id.
// Updating a missing id affects no rows and is not an error.
func (r *ProductRepository) Update(ctx context.Context, id uint, p models.Product) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Select("name", "description", "price", "image_url", "updated_at").
		Updates(&p).Error
}

// Delete removes product id.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

// Exists reports whether product id exists.
func (r *ProductRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// Count returns the number of products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}
