package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reelbase/reelbase/internal/models"
)

// ActorsRepository provides persistence helpers for actor entities.
type ActorsRepository struct {
	db *gorm.DB
}

// ActorCreateParams bundles the fields accepted when creating an actor.
type ActorCreateParams struct {
	Name   string
	Age    int
	Gender string
}

// ActorUpdateParams carries a partial update; nil fields are left untouched.
type ActorUpdateParams struct {
	Name   *string
	Age    *int
	Gender *string
}

// Create inserts a new actor row and returns the stored entity.
func (r *ActorsRepository) Create(ctx context.Context, params ActorCreateParams) (models.Actor, error) {
	actor := models.Actor{
		Name:   params.Name,
		Age:    params.Age,
		Gender: params.Gender,
	}
	if err := r.db.WithContext(ctx).Create(&actor).Error; err != nil {
		return models.Actor{}, err
	}
	return actor, nil
}

// List returns all actors.
func (r *ActorsRepository) List(ctx context.Context) ([]models.Actor, error) {
	var actors []models.Actor
	if err := r.db.WithContext(ctx).Order("id").Find(&actors).Error; err != nil {
		return nil, err
	}
	return actors, nil
}

// GetByID fetches an actor by its identifier.
func (r *ActorsRepository) GetByID(ctx context.Context, id uint) (models.Actor, error) {
	var actor models.Actor
	if err := r.db.WithContext(ctx).First(&actor, id).Error; err != nil {
		return models.Actor{}, translateNotFound(err)
	}
	return actor, nil
}

// Update applies a partial update after confirming the actor exists.
func (r *ActorsRepository) Update(ctx context.Context, id uint, params ActorUpdateParams) (models.Actor, error) {
	actor, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Actor{}, err
	}

	updates := map[string]interface{}{}
	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.Age != nil {
		updates["age"] = *params.Age
	}
	if params.Gender != nil {
		updates["gender"] = *params.Gender
	}
	if len(updates) == 0 {
		return actor, nil
	}

	if err := r.db.WithContext(ctx).Model(&actor).Updates(updates).Error; err != nil {
		return models.Actor{}, err
	}
	return actor, nil
}

// Delete removes an actor and any join rows pointing at it.
func (r *ActorsRepository) Delete(ctx context.Context, id uint) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("actor_id = ?", id).Delete(&models.MovieActor{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Actor{}, id).Error
}

// FindByIDs returns the subset of actors matching the given ids.
func (r *ActorsRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Actor, error) {
	var actors []models.Actor
	if len(ids) == 0 {
		return actors, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&actors).Error; err != nil {
		return nil, err
	}
	return actors, nil
}
