package services

import (
	"errors"
	"fmt"

	"github.com/softdesk/softdesk-api/internal/constants"
	"github.com/softdesk/softdesk-api/internal/models"
	"github.com/softdesk/softdesk-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrNotAccountOwner is returned when a user tries to modify or erase
	// someone else's account.
	ErrNotAccountOwner = errors.New("only the account owner can perform this action")
)

// UserService provides business logic for user accounts beyond signup/login.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers returns users with pagination.
func (s *UserService) ListUsers(offset, limit int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUserInput represents fields a user may change on their account.
type UpdateUserInput struct {
	Email           *string
	Password        *string
	Age             *int
	CanBeContacted  *bool
	CanDataBeShared *bool
}

// UpdateUser updates the account. Only the account owner may do this.
func (s *UserService) UpdateUser(actorID, userID uint64, input UpdateUserInput) (*models.User, error) {
	if actorID != userID {
		return nil, ErrNotAccountOwner
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*input.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = *input.Email
	}

	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}

	if input.Age != nil {
		if *input.Age < constants.MinUserAge {
			return nil, ErrUserTooYoung
		}
		user.Age = *input.Age
	}

	if input.CanBeContacted != nil {
		user.CanBeContacted = *input.CanBeContacted
	}
	if input.CanDataBeShared != nil {
		user.CanDataBeShared = *input.CanDataBeShared
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// EraseUser implements the right to be forgotten: it removes the user's
// authored projects with everything under them, the user's contributor
// rows, and the account itself. Only the account owner may do this.
func (s *UserService) EraseUser(actorID, userID uint64) error {
	if actorID != userID {
		return ErrNotAccountOwner
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Erase(userID); err != nil {
		return fmt.Errorf("failed to erase user: %w", err)
	}

	return nil
}
