package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrandonWrob/ExtendedManager/internal/repositories"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type UserServiceInterface interface {
	RegisterUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, usernameOrEmail string) (*models.User, error)
}

type UserService struct {
	store  repositories.Store
	logger *logger.Logger
}

func NewUserService(store repositories.Store, logger *logger.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger.WithComponent("user_service"),
	}
}

func (s *UserService) RegisterUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil {
		return nil, validationError("user is required")
	}
	created := user.Clone()
	created.ID = models.UnsavedID
	created.Name = strings.TrimSpace(created.Name)
	created.Username = strings.TrimSpace(created.Username)
	created.Email = strings.TrimSpace(created.Email)

	switch {
	case created.Username == "":
		return nil, validationError("username is required")
	case created.Email == "" || !strings.Contains(created.Email, "@"):
		return nil, validationError("a valid email is required")
	case created.Name == "":
		return nil, validationError("name is required")
	}

	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		for _, key := range []string{created.Username, created.Email} {
			if _, err := repos.Users.FindByUsernameOrEmail(ctx, key); err == nil {
				return fmt.Errorf("user %q: %w", key, ErrConflict)
			}
		}
		return translate(repos.Users.Create(ctx, created), fmt.Sprintf("user %q", created.Username))
	})
	if err != nil {
		s.logger.ForContext(ctx).Warn("Register user failed", "username", created.Username, "error", err)
		return nil, err
	}

	s.logger.ForContext(ctx).Info("User registered", "id", created.ID, "username", created.Username)
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, usernameOrEmail string) (*models.User, error) {
	var user *models.User
	err := s.store.Read(ctx, func(repos repositories.Repositories) error {
		var err error
		user, err = repos.Users.FindByUsernameOrEmail(ctx, usernameOrEmail)
		return translate(err, fmt.Sprintf("user %q", usernameOrEmail))
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
