package service

import (
	"fmt"

	"go-inventory-ledger/internal/apperr"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/pkg/jwt"
	"go-inventory-ledger/pkg/validator"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	// Register creates a staff identity. Elevated roles are provisioned only
	// through the admin-gated user management surface.
	Register(req *RegisterRequest) (*LoginResponse, error)
	Login(email, password string) (*LoginResponse, error)
}

type authService struct {
	store  repository.Store
	issuer *jwt.Issuer
}

func NewAuthService(store repository.Store, issuer *jwt.Issuer) AuthService {
	return &authService{store: store, issuer: issuer}
}

// invalidCredentials is deliberately identical for unknown email and wrong
// password, so the login surface cannot be used for account enumeration.
func invalidCredentials() error {
	return fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthenticated)
}

func (s *authService) Register(req *RegisterRequest) (*LoginResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.InvalidArgumentf("field %s failed on %s", first.FailedField, first.Tag)
	}

	email := model.NormalizeEmail(req.Email)
	if existing, _ := s.store.Users().FindByEmail(email); existing != nil {
		return nil, apperr.Conflictf("email %s already registered", email)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    email,
		Role:     model.RoleStaff,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.store.Users().Create(user); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	if email == "" || password == "" {
		return nil, apperr.InvalidArgumentf("email and password are required")
	}

	user, err := s.store.Users().FindByEmail(email)
	if err != nil {
		return nil, invalidCredentials()
	}
	if !user.CheckPassword(password) {
		return nil, invalidCredentials()
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is inactive: %w", apperr.ErrUnauthenticated)
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}
