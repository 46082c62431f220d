package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/elvis-tamrakar/productivity-buddy/config"
	"github.com/elvis-tamrakar/productivity-buddy/models"
	"github.com/elvis-tamrakar/productivity-buddy/repositories"
	"github.com/elvis-tamrakar/productivity-buddy/utils"
)

// UserService owns account lifecycle and credential checks.
type UserService struct {
	db    *gorm.DB
	users *repositories.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, users: repositories.NewUserRepository(db)}
}

// Register creates an account with a bcrypt hashed password.
func (s *UserService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = utils.Sanitize(strings.TrimSpace(username))

	if !validEmail(email) {
		return nil, fmt.Errorf("%w: malformed email", ErrValidation)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and issues a bearer token.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown account and wrong password are indistinguishable
			// to the caller.
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	cfg := config.Get()
	token, err := utils.GenerateToken(user.Email, user.ID, time.Duration(cfg.JWTExpiryHours)*time.Hour)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// Update applies only the non-nil fields of the patch.
func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*patch.Email))
		if !validEmail(email) {
			return nil, fmt.Errorf("%w: malformed email", ErrValidation)
		}
		if email != user.Email {
			taken, err := s.users.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, fmt.Errorf("%w: email already registered", ErrValidation)
			}
		}
		user.Email = email
	}
	if patch.Username != nil {
		username := utils.Sanitize(strings.TrimSpace(*patch.Username))
		if username == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
		}
		user.Username = username
	}
	if patch.Password != nil {
		if len(*patch.Password) < 6 {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
		}
		hash, err := utils.HashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account and everything it owns: checkpoints under
// the user's goals, the goals, buddy requests on either side, then the
// user row, all inside one transaction. Deleting an absent user is a
// no-op.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goals := repositories.NewGoalRepository(tx)
		checkpoints := repositories.NewCheckpointRepository(tx)
		buddies := repositories.NewBuddyRequestRepository(tx)
		users := repositories.NewUserRepository(tx)

		goalIDs, err := goals.IDsByUserID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkpoints.DeleteByGoalIDs(ctx, goalIDs); err != nil {
			return err
		}
		if err := goals.DeleteByUserID(ctx, id); err != nil {
			return err
		}
		if err := buddies.DeleteByUserID(ctx, id); err != nil {
			return err
		}
		return users.Delete(ctx, id)
	})
}
