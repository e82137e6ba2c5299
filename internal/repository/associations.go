package repository

import (
	"context"
	"time"

	"github.com/reelbase/reelbase/internal/models"
)

// ActorDetail is the actor payload embedded in grouped association listings.
type ActorDetail struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// MovieActors groups one movie with every actor associated to it.
type MovieActors struct {
	MovieID     uint          `json:"movieId"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	ReleaseDate *time.Time    `json:"releaseDate"`
	Genre       *string       `json:"genre"`
	PosterURL   *string       `json:"posterUrl"`
	Actors      []ActorDetail `json:"actors"`
}

// AddActors links the given actors to a movie. The movie and every actor id
// must exist. Pairs already present are skipped; only the remainder is bulk
// inserted, so associating the same actor twice leaves a single join row.
func (r *MoviesRepository) AddActors(ctx context.Context, movieID uint, actorIDs []uint) ([]models.MovieActor, error) {
	if _, err := r.GetByID(ctx, movieID); err != nil {
		return nil, err
	}

	ids := dedupeIDs(actorIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	db := r.db.WithContext(ctx)

	var actorCount int64
	if err := db.Model(&models.Actor{}).Where("id IN ?", ids).Count(&actorCount).Error; err != nil {
		return nil, err
	}
	if actorCount != int64(len(ids)) {
		return nil, ErrNotFound
	}

	var existing []models.MovieActor
	err := db.Where("movie_id = ? AND actor_id IN ?", movieID, ids).Find(&existing).Error
	if err != nil {
		return nil, err
	}
	present := make(map[uint]struct{}, len(existing))
	for _, row := range existing {
		present[row.ActorID] = struct{}{}
	}

	var inserts []models.MovieActor
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			inserts = append(inserts, models.MovieActor{MovieID: movieID, ActorID: id})
		}
	}
	if len(inserts) == 0 {
		return nil, nil
	}
	if err := db.Create(&inserts).Error; err != nil {
		return nil, err
	}
	return inserts, nil
}

// UpdateActors applies an add-set and a remove-set of actor ids. The two
// steps run as independent statements; a failure between them leaves the
// add-set applied.
func (r *MoviesRepository) UpdateActors(ctx context.Context, movieID uint, add, remove []uint) error {
	if _, err := r.AddActors(ctx, movieID, add); err != nil {
		return err
	}

	removeIDs := dedupeIDs(remove)
	if len(removeIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("movie_id = ? AND actor_id IN ?", movieID, removeIDs).
		Delete(&models.MovieActor{}).Error
}

type movieActorJoinRow struct {
	MovieID     uint
	Title       string
	Description *string
	ReleaseDate *time.Time
	Genre       *string
	PosterURL   *string `gorm:"column:poster_url"`
	ActorID     uint
	ActorName   string
	ActorAge    int
	ActorGender string
}

// ListWithActors returns every association joined with movie and actor
// attributes, grouped into one record per movie.
func (r *MoviesRepository) ListWithActors(ctx context.Context) ([]MovieActors, error) {
	var rows []movieActorJoinRow
	err := r.db.WithContext(ctx).
		Table("movie_actors").
		Select(`movie_actors.movie_id, movies.title, movies.description, movies.release_date,
			movies.genre, movies.poster_url, actors.id AS actor_id, actors.name AS actor_name,
			actors.age AS actor_age, actors.gender AS actor_gender`).
		Joins("JOIN movies ON movies.id = movie_actors.movie_id").
		Joins("JOIN actors ON actors.id = movie_actors.actor_id").
		Order("movie_actors.movie_id, actors.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grouped := make([]MovieActors, 0)
	index := make(map[uint]int)
	for _, row := range rows {
		i, ok := index[row.MovieID]
		if !ok {
			grouped = append(grouped, MovieActors{
				MovieID:     row.MovieID,
				Title:       row.Title,
				Description: row.Description,
				ReleaseDate: row.ReleaseDate,
				Genre:       row.Genre,
				PosterURL:   row.PosterURL,
			})
			i = len(grouped) - 1
			index[row.MovieID] = i
		}
		grouped[i].Actors = append(grouped[i].Actors, ActorDetail{
			ID:     row.ActorID,
			Name:   row.ActorName,
			Age:    row.ActorAge,
			Gender: row.ActorGender,
		})
	}
	return grouped, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
