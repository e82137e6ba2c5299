package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reelbase/reelbase/internal/models"
)

// UsersRepository provides persistence helpers for user accounts.
type UsersRepository struct {
	db *gorm.DB
}

// Create stores a new user; the password must already be hashed.
func (r *UsersRepository) Create(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	user := models.User{
		Username: username,
		Email:    email,
		Password: passwordHash,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetByID fetches a user by its identifier.
func (r *UsersRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, translateNotFound(err)
	}
	return user, nil
}

// FindByUsernameOrEmail resolves a login identifier against either column.
func (r *UsersRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		return models.User{}, translateNotFound(err)
	}
	return user, nil
}

// UsernameOrEmailTaken reports whether either value is already registered,
// checked in a single OR query.
func (r *UsersRepository) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a user, drops their ratings, and detaches the movies they
// created by nulling created_by.
func (r *UsersRepository) Delete(ctx context.Context, id uint) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", id).Delete(&models.MovieRating{}).Error; err != nil {
		return err
	}
	err := db.Model(&models.Movie{}).
		Where("created_by = ?", id).
		Update("created_by", nil).Error
	if err != nil {
		return err
	}
	return db.Delete(&models.User{}, id).Error
}
