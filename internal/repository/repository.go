package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/reelbase/reelbase/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Movies  *MoviesRepository
	Actors  *ActorsRepository
	Users   *UsersRepository
	Ratings *RatingsRepository
	Studios *StudiosRepository
	Games   *GamesRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithDB(st.DB())
}

// NewWithDB allows constructing repositories directly from a gorm handle.
func NewWithDB(db *gorm.DB) *Repository {
	return &Repository{
		Movies:  &MoviesRepository{db: db},
		Actors:  &ActorsRepository{db: db},
		Users:   &UsersRepository{db: db},
		Ratings: &RatingsRepository{db: db},
		Studios: &StudiosRepository{db: db},
		Games:   &GamesRepository{db: db},
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
