package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by email. A miss is gorm.ErrRecordNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, err
}

// Create persists a new user record. A duplicate email surfaces as the
// driver's unique-constraint error.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}
