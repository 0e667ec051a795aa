package service

import (
	"context"
	"fmt"
	"strings"

	"homekeeper/internal/model"
)

// UserStore is the storage collaborator for users.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context, skip, take int) ([]model.User, error)
	Update(ctx context.Context, id uint, changes map[string]interface{}) (*model.User, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// CreateUserInput carries the fields for a new user.
type CreateUserInput struct {
	Name  string
	Email string
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// UserService wraps user CRUD.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}

// ListUsers pages through users with offset/limit semantics.
func (s *UserService) ListUsers(ctx context.Context, skip, take int) ([]model.User, error) {
	return s.users.List(ctx, skip, take)
}

func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrUserNameRequired
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, ErrEmailRequired
	}

	user := model.User{Name: input.Name, Email: input.Email}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error) {
	changes := map[string]interface{}{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrUserNameRequired
		}
		changes["name"] = *input.Name
	}
	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			return nil, ErrEmailRequired
		}
		changes["email"] = *input.Email
	}

	user, err := s.users.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	found, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}
