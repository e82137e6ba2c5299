package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reelbase/reelbase/internal/models"
)

// GamesRepository provides persistence helpers for the secondary catalog's games.
type GamesRepository struct {
	db *gorm.DB
}

// GameParams carries the writable game fields.
type GameParams struct {
	Name  *string
	Genre *string
}

// Create inserts a new game row.
func (r *GamesRepository) Create(ctx context.Context, name, genre string) (models.Game, error) {
	game := models.Game{Name: name, Genre: genre}
	if err := r.db.WithContext(ctx).Create(&game).Error; err != nil {
		return models.Game{}, err
	}
	return game, nil
}

// List returns all games.
func (r *GamesRepository) List(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := r.db.WithContext(ctx).Order("id").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// GetByID fetches a game by its identifier.
func (r *GamesRepository) GetByID(ctx context.Context, id uint) (models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return models.Game{}, translateNotFound(err)
	}
	return game, nil
}

// Update applies a partial update after confirming the game exists.
func (r *GamesRepository) Update(ctx context.Context, id uint, params GameParams) (models.Game, error) {
	game, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Game{}, err
	}

	updates := map[string]interface{}{}
	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.Genre != nil {
		updates["genre"] = *params.Genre
	}
	if len(updates) == 0 {
		return game, nil
	}

	if err := r.db.WithContext(ctx).Model(&game).Updates(updates).Error; err != nil {
		return models.Game{}, err
	}
	return game, nil
}

// Delete removes a game, reporting ErrNotFound when it never existed.
func (r *GamesRepository) Delete(ctx context.Context, id uint) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Game{}, id).Error
}
