package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"contacts-api/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token).Error
}

func (r *UserRepository) ConfirmEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("confirmed", true).Error
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, email, url string) (*models.User, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("avatar", url).Error; err != nil {
		return nil, err
	}
	return r.GetByEmail(ctx, email)
}
