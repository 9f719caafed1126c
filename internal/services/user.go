package services

import (
	"context"

	"assettrack/internal/dao"
	"assettrack/internal/errs"
	"assettrack/internal/models"
)

type UserService struct {
	users       dao.UserRepository
	authService *AuthService
}

func NewUserService(users dao.UserRepository, authService *AuthService) *UserService {
	return &UserService{
		users:       users,
		authService: authService,
	}
}

type CreateUserInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Password  string
	Role      models.Role
	Active    bool
}

// UpdateUserInput holds the fields to change. Nil fields are left alone.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Email     *string
	Role      *models.Role
	Active    *bool
}

// GetUsers returns all users
func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}

func (s *UserService) GetActiveUsers(ctx context.Context, limit int) ([]models.User, error) {
	return s.users.GetActiveUsers(ctx, limit)
}

// GetUser returns a specific user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.Get(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// CreateUser creates a new user
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if !in.Role.Valid() {
		return nil, errs.InvalidArgument("role must be one of TECHNICIAN, MANAGER, ADMIN")
	}

	hashedPassword, err := s.authService.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Email:        in.Email,
		Role:         in.Role,
		Active:       in.Active,
		PasswordHash: hashedPassword,
	})
}

// UpdateUser updates user information (except password)
func (s *UserService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	if in.Role != nil && !in.Role.Valid() {
		return nil, errs.InvalidArgument("role must be one of TECHNICIAN, MANAGER, ADMIN")
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}

	return s.users.Update(ctx, user)
}

// UpdatePassword updates user password
func (s *UserService) UpdatePassword(ctx context.Context, id uint, newPassword string) error {
	if len(newPassword) < 8 {
		return errs.InvalidArgument("password must be at least 8 characters")
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		return err
	}

	hashedPassword, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashedPassword
	_, err = s.users.Update(ctx, user)
	return err
}
