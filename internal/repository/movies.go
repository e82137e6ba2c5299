package repository

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/reelbase/reelbase/internal/models"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	db *gorm.DB
}

// MovieCreateParams bundles the fields accepted when creating a movie.
// Optional fields stay nil when the request omitted them.
type MovieCreateParams struct {
	Title       string
	Description *string
	ReleaseDate *time.Time
	Genre       *string
	PosterURL   *string
	CreatedBy   *uint
}

// MovieUpdateParams carries a partial update; nil fields are left untouched.
type MovieUpdateParams struct {
	Title       *string
	Description *string
	ReleaseDate *time.Time
	Genre       *string
	PosterURL   *string
}

// MovieWithRating decorates a movie with its aggregate rating for the
// public endpoints.
type MovieWithRating struct {
	models.Movie
	AverageRating *float64 `json:"averageRating"`
}

// Create inserts a new movie row and returns the stored entity.
func (r *MoviesRepository) Create(ctx context.Context, params MovieCreateParams) (models.Movie, error) {
	movie := models.Movie{
		Title:       params.Title,
		Description: params.Description,
		ReleaseDate: params.ReleaseDate,
		Genre:       params.Genre,
		PosterURL:   params.PosterURL,
		CreatedBy:   params.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Create(&movie).Error; err != nil {
		return models.Movie{}, err
	}
	return movie, nil
}

// List returns all movies.
func (r *MoviesRepository) List(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := r.db.WithContext(ctx).Order("id").Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id uint) (models.Movie, error) {
	var movie models.Movie
	if err := r.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		return models.Movie{}, translateNotFound(err)
	}
	return movie, nil
}

// Update applies a partial update after confirming the movie exists.
func (r *MoviesRepository) Update(ctx context.Context, id uint, params MovieUpdateParams) (models.Movie, error) {
	movie, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Movie{}, err
	}

	updates := map[string]interface{}{}
	if params.Title != nil {
		updates["title"] = *params.Title
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.ReleaseDate != nil {
		updates["release_date"] = *params.ReleaseDate
	}
	if params.Genre != nil {
		updates["genre"] = *params.Genre
	}
	if params.PosterURL != nil {
		updates["poster_url"] = *params.PosterURL
	}
	if len(updates) == 0 {
		return movie, nil
	}

	if err := r.db.WithContext(ctx).Model(&movie).Updates(updates).Error; err != nil {
		return models.Movie{}, err
	}
	return movie, nil
}

// Delete removes a movie together with its ratings and actor associations.
// The dependent rows go first so the cascade holds even where the schema
// has no enforced foreign keys (sqlite without the pragma).
func (r *MoviesRepository) Delete(ctx context.Context, id uint) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("movie_id = ?", id).Delete(&models.MovieRating{}).Error; err != nil {
		return err
	}
	if err := db.Where("movie_id = ?", id).Delete(&models.MovieActor{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Movie{}, id).Error
}

// ListWithRatings returns every movie decorated with its average rating.
func (r *MoviesRepository) ListWithRatings(ctx context.Context) ([]MovieWithRating, error) {
	var results []MovieWithRating
	err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Select("movies.*, AVG(movie_ratings.rating) AS average_rating").
		Joins("LEFT JOIN movie_ratings ON movie_ratings.movie_id = movies.id").
		Group("movies.id").
		Order("movies.id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetWithRating returns one movie decorated with its average rating.
func (r *MoviesRepository) GetWithRating(ctx context.Context, id uint) (MovieWithRating, error) {
	movie, err := r.GetByID(ctx, id)
	if err != nil {
		return MovieWithRating{}, err
	}

	var avg sql.NullFloat64
	err = r.db.WithContext(ctx).
		Model(&models.MovieRating{}).
		Select("AVG(rating)").
		Where("movie_id = ?", id).
		Scan(&avg).Error
	if err != nil {
		return MovieWithRating{}, err
	}

	result := MovieWithRating{Movie: movie}
	if avg.Valid {
		result.AverageRating = &avg.Float64
	}
	return result, nil
}
