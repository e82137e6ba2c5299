package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reelbase/reelbase/internal/models"
)

// StudiosRepository provides persistence helpers for the secondary catalog's studios.
type StudiosRepository struct {
	db *gorm.DB
}

// StudioParams carries the writable studio fields.
type StudioParams struct {
	Name     *string
	Location *string
}

// Create inserts a new studio row.
func (r *StudiosRepository) Create(ctx context.Context, name, location string) (models.Studio, error) {
	studio := models.Studio{Name: name, Location: location}
	if err := r.db.WithContext(ctx).Create(&studio).Error; err != nil {
		return models.Studio{}, err
	}
	return studio, nil
}

// List returns all studios.
func (r *StudiosRepository) List(ctx context.Context) ([]models.Studio, error) {
	var studios []models.Studio
	if err := r.db.WithContext(ctx).Order("id").Find(&studios).Error; err != nil {
		return nil, err
	}
	return studios, nil
}

// GetByID fetches a studio by its identifier.
func (r *StudiosRepository) GetByID(ctx context.Context, id uint) (models.Studio, error) {
	var studio models.Studio
	if err := r.db.WithContext(ctx).First(&studio, id).Error; err != nil {
		return models.Studio{}, translateNotFound(err)
	}
	return studio, nil
}

// Update applies a partial update after confirming the studio exists.
func (r *StudiosRepository) Update(ctx context.Context, id uint, params StudioParams) (models.Studio, error) {
	studio, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Studio{}, err
	}

	updates := map[string]interface{}{}
	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.Location != nil {
		updates["location"] = *params.Location
	}
	if len(updates) == 0 {
		return studio, nil
	}

	if err := r.db.WithContext(ctx).Model(&studio).Updates(updates).Error; err != nil {
		return models.Studio{}, err
	}
	return studio, nil
}

// Delete removes a studio, reporting ErrNotFound when it never existed.
func (r *StudiosRepository) Delete(ctx context.Context, id uint) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Studio{}, id).Error
}
