package dao

import (
	"context"
	"strings"

	"assettrack/internal/errs"
	"assettrack/internal/models"

	"gorm.io/gorm"
)

type UserDAO struct {
	uow unitOfWork
}

func NewUserDAO(db *gorm.DB, opts ...Option) *UserDAO {
	return &UserDAO{uow: newUnitOfWork(db, "user", opts)}
}

func (d *UserDAO) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errs.InvalidArgument("user cannot be nil")
	}
	if !user.Role.Valid() {
		return nil, errs.InvalidArgument("role must be one of TECHNICIAN, MANAGER, ADMIN")
	}

	err := d.uow.write(ctx, "create", "create user failed", func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (d *UserDAO) Get(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, errs.InvalidArgument("user id is required")
	}

	var user models.User
	err := d.uow.read(ctx, "get", "get user failed", func(db *gorm.DB) error {
		return notFound(db.First(&user, id).Error, "user not found")
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAll returns every user, active or not.
func (d *UserDAO) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := d.uow.read(ctx, "get_all", "list users failed", func(db *gorm.DB) error {
		return db.Order("user_id").Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update overwrites every column of the stored user with the values in user.
// The row must already exist.
func (d *UserDAO) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil || user.ID == 0 {
		return nil, errs.InvalidArgument("user and user id are required")
	}
	if !user.Role.Valid() {
		return nil, errs.InvalidArgument("role must be one of TECHNICIAN, MANAGER, ADMIN")
	}

	err := d.uow.write(ctx, "update", "update user failed", func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Select("user_id").First(&existing, user.ID).Error; err != nil {
			return notFound(err, "user not found")
		}
		return tx.Save(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail returns the active user with the given email. Inactive users are
// reported as not found.
func (d *UserDAO) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errs.InvalidArgument("email is required")
	}

	var user models.User
	err := d.uow.read(ctx, "get_by_email", "get user by email failed", func(db *gorm.DB) error {
		err := db.Where("email = ? AND active = ?", email, true).First(&user).Error
		return notFound(err, "user not found")
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *UserDAO) GetActiveUsers(ctx context.Context, limit int) ([]models.User, error) {
	if limit <= 0 {
		return nil, errs.InvalidArgument("limit must be greater than 0")
	}

	var users []models.User
	err := d.uow.read(ctx, "get_active", "list active users failed", func(db *gorm.DB) error {
		return db.Where("active = ?", true).Order("user_id").Limit(limit).Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
