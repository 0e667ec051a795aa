package service

import (
	"context"
	"errors"
	"testing"

	"homekeeper/internal/model"
)

type fakeUserStore struct {
	createFn func(*model.User) error
	findFn   func(uint) (*model.User, error)
	listFn   func(int, int) ([]model.User, error)
	updateFn func(uint, map[string]interface{}) (*model.User, error)
	deleteFn func(uint) (bool, error)
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error { return s.createFn(user) }
func (s *fakeUserStore) FindByID(_ context.Context, id uint) (*model.User, error) {
	return s.findFn(id)
}
func (s *fakeUserStore) List(_ context.Context, skip, take int) ([]model.User, error) {
	return s.listFn(skip, take)
}
func (s *fakeUserStore) Update(_ context.Context, id uint, changes map[string]interface{}) (*model.User, error) {
	return s.updateFn(id, changes)
}
func (s *fakeUserStore) Delete(_ context.Context, id uint) (bool, error) { return s.deleteFn(id) }

func TestCreateUserValidation(t *testing.T) {
	store := &fakeUserStore{createFn: func(*model.User) error {
		t.Fatal("Create should not be called on invalid input")
		return nil
	}}
	svc := NewUserService(store)

	if _, err := svc.CreateUser(context.Background(), CreateUserInput{Email: "a@b.c"}); !errors.Is(err, ErrUserNameRequired) {
		t.Fatalf("err=%v, want ErrUserNameRequired", err)
	}
	if _, err := svc.CreateUser(context.Background(), CreateUserInput{Name: "Ada"}); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("err=%v, want ErrEmailRequired", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := &fakeUserStore{findFn: func(uint) (*model.User, error) { return nil, nil }}
	svc := NewUserService(store)

	_, err := svc.GetUser(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	store := &fakeUserStore{deleteFn: func(uint) (bool, error) { return false, nil }}
	svc := NewUserService(store)

	if err := svc.DeleteUser(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	var gotChanges map[string]interface{}
	store := &fakeUserStore{updateFn: func(_ uint, changes map[string]interface{}) (*model.User, error) {
		gotChanges = changes
		return &model.User{ID: 1}, nil
	}}
	svc := NewUserService(store)

	name := "Grace"
	if _, err := svc.UpdateUser(context.Background(), 1, UpdateUserInput{Name: &name}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if gotChanges["name"] != "Grace" {
		t.Fatalf("changes=%v, want name Grace", gotChanges)
	}
	if _, present := gotChanges["email"]; present {
		t.Fatalf("email should not be touched: %v", gotChanges)
	}
}
