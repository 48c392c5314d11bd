package service

import (
	"go-inventory-ledger/internal/apperr"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/pkg/validator"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role" validate:"required"`
}

type UpdateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Role     model.Role `json:"role" validate:"required"`
	Password *string    `json:"password,omitempty" validate:"omitempty,min=6"`
	IsActive *bool      `json:"is_active"`
}

// UserService is the admin-only identity management surface; the one place a
// non-staff role can be assigned.
type UserService interface {
	CreateUser(req *CreateUserRequest) (*model.UserResponse, error)
	UpdateUser(id uuid.UUID, req *UpdateUserRequest) (*model.UserResponse, error)
	DeactivateUser(id uuid.UUID) error
	GetUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type userService struct {
	store repository.Store
}

func NewUserService(store repository.Store) UserService {
	return &userService{store: store}
}

func (s *userService) CreateUser(req *CreateUserRequest) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.InvalidArgumentf("field %s failed on %s", first.FailedField, first.Tag)
	}
	if !req.Role.Valid() {
		return nil, apperr.InvalidArgumentf("unknown role %q", req.Role)
	}

	email := model.NormalizeEmail(req.Email)
	if existing, _ := s.store.Users().FindByEmail(email); existing != nil {
		return nil, apperr.Conflictf("email %s already registered", email)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    email,
		Role:     req.Role,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.store.Users().Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) UpdateUser(id uuid.UUID, req *UpdateUserRequest) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.InvalidArgumentf("field %s failed on %s", first.FailedField, first.Tag)
	}
	if !req.Role.Valid() {
		return nil, apperr.InvalidArgumentf("unknown role %q", req.Role)
	}

	user, err := s.store.Users().FindByID(id)
	if err != nil {
		return nil, err
	}

	email := model.NormalizeEmail(req.Email)
	if email != user.Email {
		if existing, _ := s.store.Users().FindByEmail(email); existing != nil {
			return nil, apperr.Conflictf("email %s already registered", email)
		}
	}

	user.Name = req.Name
	user.Email = email
	user.Role = req.Role
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.store.Users().Update(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

// DeactivateUser clears the active flag; identities are never hard-deleted.
func (s *userService) DeactivateUser(id uuid.UUID) error {
	return s.store.Users().Deactivate(id)
}

func (s *userService) GetUsers() ([]model.UserResponse, error) {
	users, err := s.store.Users().FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.store.Users().FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}
