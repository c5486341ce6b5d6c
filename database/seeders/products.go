package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
	"github.com/Eswaramoorthy-2004/my-ecom-store/app/repositories"
)

func init() {
	Register("products", SeedProducts)
}

var sampleProducts = []models.Product{
	{Name: "Canvas Tote", Description: "Heavy cotton tote with inner pocket.", Price: 18.50, ImageURL: "https://picsum.photos/seed/tote/400/300"},
	{Name: "Ceramic Mug", Description: "350 ml stoneware mug, dishwasher safe.", Price: 12.00, ImageURL: "https://picsum.photos/seed/mug/400/300"},
	{Name: "Desk Lamp", Description: "Adjustable LED lamp with warm and cool modes.", Price: 39.99, ImageURL: "https://picsum.photos/seed/lamp/400/300"},
	{Name: "Notebook", Description: "A5 dotted notebook, 192 pages.", Price: 9.75, ImageURL: "https://picsum.photos/seed/notebook/400/300"},
}

// SeedProducts fills an empty catalogue with a few sample products.
func SeedProducts(db *gorm.DB) error {
	count, err := repositories.NewProductRepository(db).Count(context.Background())
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rows := make([]models.Product, len(sampleProducts))
	copy(rows, sampleProducts)
	return db.Create(&rows).Error
}
