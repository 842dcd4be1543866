package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/platform/logger"
	"go.uber.org/zap"
)

// AuthUser is the identity snapshot carried by a verified token.
type AuthUser struct {
	ID    string
	Email string
	Name  string
}

type UserUsecase struct {
	users  domain.UserRepository
	logger *logger.Logger
}

func NewUserUsecase(users domain.UserRepository, log *logger.Logger) *UserUsecase {
	return &UserUsecase{
		users:  users,
		logger: log.Named("UserUsecase"),
	}
}

// Profile returns the caller's user document, creating it from the token
// identity on first contact.
func (uc *UserUsecase) Profile(ctx context.Context, auth AuthUser) (*domain.User, error) {
	if auth.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := uc.users.FindByID(ctx, auth.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if err := uc.users.EnsureUser(ctx, &domain.User{ID: auth.ID, Email: auth.Email, Name: auth.Name}); err != nil {
		uc.logger.Error("Profile: failed to create user document", zap.String("user_id", auth.ID), zap.Error(err))
		return nil, err
	}
	return uc.users.FindByID(ctx, auth.ID)
}

// UpdateName changes the display name with a field-level update.
func (uc *UserUsecase) UpdateName(ctx context.Context, userID, name string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidName
	}

	if err := uc.users.UpdateName(ctx, userID, name); err != nil {
		uc.logger.Error("UpdateName: store write failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	uc.logger.Info("Display name updated", zap.String("user_id", userID))
	return nil
}
