package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
	"github.com/Eswaramoorthy-2004/my-ecom-store/app/repositories"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/apperr"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/auth"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/logger"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/metrics"
)

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register hashes password and stores a customer account. Any store
// failure, a taken email included, is reported as apperr.Store.
func (s *AuthService) Register(ctx context.Context, email, password string) (models.User, error) {
	const op = "auth.register"

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, apperr.E(apperr.Store, op, err)
	}

	user := models.User{Email: email, Password: hash, Role: auth.RoleCustomer}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, apperr.E(apperr.Store, op, err)
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login checks email and password. Unknown email and wrong password both
// return apperr.Unauthenticated; only the debug log tells them apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (auth.Identity, error) {
	const op = "auth.login"
	log := logger.WithCtx(ctx)

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		log.Debug("login rejected", "reason", "unknown_email")
		return auth.Identity{}, apperr.E(apperr.Unauthenticated, op, nil)
	}
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return auth.Identity{}, apperr.E(apperr.Store, op, err)
	}

	if !auth.CheckPassword(user.Password, password) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		log.Debug("login rejected", "reason", "password_mismatch", "user_id", user.ID)
		return auth.Identity{}, apperr.E(apperr.Unauthenticated, op, nil)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return user.Identity(), nil
}
