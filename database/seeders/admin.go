package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
	"github.com/Eswaramoorthy-2004/my-ecom-store/config"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/auth"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/logger"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the administrator from ADMIN_EMAIL and ADMIN_PASSWORD
// unless a user with that email already exists. It is skipped when either
// key is empty.
func SeedAdmin(db *gorm.DB) error {
	email, password := config.AdminEmail(), config.AdminPassword()
	if email == "" || password == "" {
		logger.Warn("seed admin skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}
	return CreateAdmin(db, email, password)
}

// CreateAdmin inserts an admin account if email is free.
func CreateAdmin(db *gorm.DB, email, password string) error {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		logger.Info("seed admin: account exists", "email", email, "role", existing.Role)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{Email: email, Password: hash, Role: auth.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Info("seed admin: created", "email", email, "user_id", admin.ID)
	return nil
}
