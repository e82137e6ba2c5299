package models

import "time"

// User is an account that can create movies and submit ratings.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Movie is the primary catalog entity. Optional fields are pointers so a
// bare create renders them as JSON null.
type Movie struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `json:"description"`
	ReleaseDate *time.Time `json:"releaseDate"`
	Genre       *string    `json:"genre"`
	PosterURL   *string    `gorm:"column:poster_url" json:"posterUrl"`
	CreatedBy   *uint      `json:"createdBy"`
	Creator     *User      `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Actor participates in movies through the movie_actors join table.
type Actor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MovieActor is a pure join row: no surrogate id, no timestamps. Pair
// uniqueness is enforced by the association service, not the schema.
type MovieActor struct {
	MovieID uint `gorm:"index;not null" json:"movieId"`
	ActorID uint `gorm:"index;not null" json:"actorId"`
}

// TableName keeps the join table name explicit.
func (MovieActor) TableName() string {
	return "movie_actors"
}

// MovieRating holds one user's rating of one movie, kept single per pair
// by upsert semantics in the repository.
type MovieRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MovieID   uint      `gorm:"not null;index" json:"movieId"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Movie     *Movie    `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Studio belongs to the secondary catalog.
type Studio struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Location  string    `gorm:"not null" json:"location"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Game belongs to the secondary catalog.
type Game struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Genre     string    `gorm:"not null" json:"genre"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// All lists every entity registered for schema synchronization.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Movie{},
		&Actor{},
		&MovieActor{},
		&MovieRating{},
		&Studio{},
		&Game{},
	}
}
