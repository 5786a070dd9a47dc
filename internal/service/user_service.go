package service

import (
	"context"

	"coursehub/internal/models"
	"coursehub/internal/repository"
	"coursehub/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost used by existing account hashes.
const bcryptCost = 10

type UserService struct {
	userRepo repository.UserRepository
}

type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	UserID   uint   `json:"-"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher"`
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup registers a new account. Role defaults to student.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Email = validation.NormalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleStudent
	}
	user := &models.User{
		Email:    in.Email,
		Password: string(hashed),
		Name:     in.Name,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials. Unknown emails and wrong passwords are indistinguishable.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	in.Email = validation.NormalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, models.NewUnauthenticatedError("Invalid email or password")
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile changes the caller's own account. Empty fields are left as they are.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if in.Email != "" {
		in.Email = validation.NormalizeEmail(in.Email)
	}
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		taken, err := s.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, models.NewConflictError("Email is already in use", nil)
		}
		user.Email = in.Email
	}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Role != "" {
		user.Role = in.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
