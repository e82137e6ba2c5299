package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/reelbase/reelbase/internal/models"
)

// RatingsRepository provides helpers for movie ratings.
type RatingsRepository struct {
	db *gorm.DB
}

// Upsert inserts or updates the single rating row for a (movie, user) pair
// and reports whether it was newly created.
func (r *RatingsRepository) Upsert(ctx context.Context, movieID, userID uint, rating int) (models.MovieRating, bool, error) {
	db := r.db.WithContext(ctx)

	var existing models.MovieRating
	err := db.Where("movie_id = ? AND user_id = ?", movieID, userID).First(&existing).Error
	switch {
	case err == nil:
		if err := db.Model(&existing).Update("rating", rating).Error; err != nil {
			return models.MovieRating{}, false, err
		}
		return existing, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		created := models.MovieRating{MovieID: movieID, UserID: userID, Rating: rating}
		if err := db.Create(&created).Error; err != nil {
			return models.MovieRating{}, false, err
		}
		return created, true, nil
	default:
		return models.MovieRating{}, false, err
	}
}

// Get retrieves the rating a user gave a specific movie.
func (r *RatingsRepository) Get(ctx context.Context, userID, movieID uint) (models.MovieRating, error) {
	var rating models.MovieRating
	err := r.db.WithContext(ctx).
		Where("movie_id = ? AND user_id = ?", movieID, userID).
		First(&rating).Error
	if err != nil {
		return models.MovieRating{}, translateNotFound(err)
	}
	return rating, nil
}

// ListByUser returns a user's ratings as a movie id to rating value map.
func (r *RatingsRepository) ListByUser(ctx context.Context, userID uint) (map[uint]int, error) {
	var rows []models.MovieRating
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ratings := make(map[uint]int, len(rows))
	for _, row := range rows {
		ratings[row.MovieID] = row.Rating
	}
	return ratings, nil
}
