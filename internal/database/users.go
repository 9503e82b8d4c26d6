package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"gorm.io/gorm"
)

// UserRepository stores API accounts
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new gorm user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user. A taken email fails with ErrConflict.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	rec := userRecord{
		Email:        strings.ToLower(u.Email),
		PasswordHash: u.PasswordHash,
		IsStaff:      u.IsStaff,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", mapError(err))
	}
	*u = rec.toModel()
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&rec).Error
	if err != nil {
		return nil, mapError(err)
	}
	u := rec.toModel()
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, mapError(err)
	}
	u := rec.toModel()
	return &u, nil
}

// Promote grants staff rights to the user and replaces the password hash
func (r *UserRepository) Promote(ctx context.Context, id int64, passwordHash string) (*models.User, error) {
	res := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).
		Updates(map[string]any{"is_staff": true, "password_hash": passwordHash})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to promote user: %w", mapError(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
