package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/reelbase/reelbase/internal/store"
)

var testDBSeq atomic.Int64

// newTestRepo opens a fresh in-memory sqlite database with the schema
// synced. The shared-cache DSN keeps the database alive across the pool's
// connections for the lifetime of the store.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	st, err := store.New(context.Background(), store.Options{
		Driver: "sqlite",
		URL:    dsn,
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(st.Close)

	return New(st)
}

func strPtr(s string) *string { return &s }

func TestMovieCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	movie, err := repo.Movies.Create(ctx, MovieCreateParams{Title: "Inception"})
	require.NoError(t, err)
	require.NotZero(t, movie.ID)
	require.Nil(t, movie.Description)
	require.Nil(t, movie.ReleaseDate)
	require.Nil(t, movie.Genre)
	require.Nil(t, movie.CreatedBy)

	fetched, err := repo.Movies.GetByID(ctx, movie.ID)
	require.NoError(t, err)
	require.Equal(t, "Inception", fetched.Title)

	updated, err := repo.Movies.Update(ctx, movie.ID, MovieUpdateParams{
		Genre:       strPtr("Sci-Fi"),
		Description: strPtr("A heist inside dreams."),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Genre)
	require.Equal(t, "Sci-Fi", *updated.Genre)
	require.Equal(t, "Inception", updated.Title)

	require.NoError(t, repo.Movies.Delete(ctx, movie.ID))

	_, err = repo.Movies.GetByID(ctx, movie.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMovieUpdateNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Movies.Update(context.Background(), 999, MovieUpdateParams{Title: strPtr("x")})
	require.ErrorIs(t, err, ErrNotFound)

	err = repo.Movies.Delete(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMovieDeleteCascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	movie, err := repo.Movies.Create(ctx, MovieCreateParams{Title: "Heat"})
	require.NoError(t, err)
	actor, err := repo.Actors.Create(ctx, ActorCreateParams{Name: "Al Pacino", Age: 83, Gender: "male"})
	require.NoError(t, err)
	user, err := repo.Users.Create(ctx, "rater", "rater@example.com", "hash")
	require.NoError(t, err)

	_, err = repo.Movies.AddActors(ctx, movie.ID, []uint{actor.ID})
	require.NoError(t, err)
	_, _, err = repo.Ratings.Upsert(ctx, movie.ID, user.ID, 5)
	require.NoError(t, err)

	require.NoError(t, repo.Movies.Delete(ctx, movie.ID))

	_, err = repo.Ratings.Get(ctx, user.ID, movie.ID)
	require.ErrorIs(t, err, ErrNotFound)

	grouped, err := repo.Movies.ListWithActors(ctx)
	require.NoError(t, err)
	require.Empty(t, grouped)
}

func TestUserDeleteCascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user, err := repo.Users.Create(ctx, "creator", "creator@example.com", "hash")
	require.NoError(t, err)
	movie, err := repo.Movies.Create(ctx, MovieCreateParams{Title: "Alien", CreatedBy: &user.ID})
	require.NoError(t, err)
	_, _, err = repo.Ratings.Upsert(ctx, movie.ID, user.ID, 4)
	require.NoError(t, err)

	require.NoError(t, repo.Users.Delete(ctx, user.ID))

	// The movie survives with its creator detached.
	survived, err := repo.Movies.GetByID(ctx, movie.ID)
	require.NoError(t, err)
	require.Nil(t, survived.CreatedBy)

	_, err = repo.Ratings.Get(ctx, user.ID, movie.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddActorsDeduplicates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	movie, err := repo.Movies.Create(ctx, MovieCreateParams{Title: "The Prestige"})
	require.NoError(t, err)
	a1, err := repo.Actors.Create(ctx, ActorCreateParams{Name: "Christian Bale", Age: 50, Gender: "male"})
	require.NoError(t, err)
	a2, err := repo.Actors.Create(ctx, ActorCreateParams{Name: "Hugh Jackman", Age: 55, Gender: "male"})
	require.NoError(t, err)

	added, err := repo.Movies.AddActors(ctx, movie.ID, []uint{a1.ID})
	require.NoError(t, err)
	require.Len(t, added, 1)

	// Re-associating an existing pair inserts only the new one.
	added, err = repo.Movies.AddActors(ctx, movie.ID, []uint{a1.ID, a2.ID})
	require.NoError(t, err)
	require.Len(t, added, 1)
	require.Equal(t, a2.ID, added[0].ActorID)

	grouped, err := repo.Movies.ListWithActors(ctx)
	require.NoError(t, err)
	require.Len(t, grouped, 1)
	require.Len(t, grouped[0].Actors, 2)
}

func TestAddActorsUnknownActor(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	movie, err := repo.Movies.Create(ctx, MovieCreateParams{Title: "Solaris"})
	require.NoError(t, err)

	_, err = repo.Movies.AddActors(ctx, movie.ID, []uint{12345})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Movies.AddActors(ctx, 999, []uint{1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateActorsAddAndRemove(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	movie, err := repo.Movies.Create(ctx, MovieCreateParams{Title: "Ronin"})
	require.NoError(t, err)
	a1, err := repo.Actors.Create(ctx, ActorCreateParams{Name: "Robert De Niro", Age: 80, Gender: "male"})
	require.NoError(t, err)
	a2, err := repo.Actors.Create(ctx, ActorCreateParams{Name: "Jean Reno", Age: 75, Gender: "male"})
	require.NoError(t, err)

	_, err = repo.Movies.AddActors(ctx, movie.ID, []uint{a1.ID})
	require.NoError(t, err)

	err = repo.Movies.UpdateActors(ctx, movie.ID, []uint{a2.ID}, []uint{a1.ID})
	require.NoError(t, err)

	grouped, err := repo.Movies.ListWithActors(ctx)
	require.NoError(t, err)
	require.Len(t, grouped, 1)
	require.Len(t, grouped[0].Actors, 1)
	require.Equal(t, a2.ID, grouped[0].Actors[0].ID)
}

func TestRatingUpsert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	movie, err := repo.Movies.Create(ctx, MovieCreateParams{Title: "Se7en"})
	require.NoError(t, err)
	user, err := repo.Users.Create(ctx, "rater", "rater@example.com", "hash")
	require.NoError(t, err)

	first, created, err := repo.Ratings.Upsert(ctx, movie.ID, user.ID, 5)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, 5, first.Rating)

	second, created, err := repo.Ratings.Upsert(ctx, movie.ID, user.ID, 3)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 3, second.Rating)

	ratings, err := repo.Ratings.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, map[uint]int{movie.ID: 3}, ratings)
}

func TestMovieAverageRating(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	movie, err := repo.Movies.Create(ctx, MovieCreateParams{Title: "Arrival"})
	require.NoError(t, err)
	unrated, err := repo.Movies.Create(ctx, MovieCreateParams{Title: "Dune"})
	require.NoError(t, err)

	u1, err := repo.Users.Create(ctx, "u1", "u1@example.com", "hash")
	require.NoError(t, err)
	u2, err := repo.Users.Create(ctx, "u2", "u2@example.com", "hash")
	require.NoError(t, err)

	_, _, err = repo.Ratings.Upsert(ctx, movie.ID, u1.ID, 4)
	require.NoError(t, err)
	_, _, err = repo.Ratings.Upsert(ctx, movie.ID, u2.ID, 5)
	require.NoError(t, err)

	withRating, err := repo.Movies.GetWithRating(ctx, movie.ID)
	require.NoError(t, err)
	require.NotNil(t, withRating.AverageRating)
	require.InDelta(t, 4.5, *withRating.AverageRating, 0.001)

	noRating, err := repo.Movies.GetWithRating(ctx, unrated.ID)
	require.NoError(t, err)
	require.Nil(t, noRating.AverageRating)

	all, err := repo.Movies.ListWithRatings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestUserLookup(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Users.Create(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)

	byName, err := repo.Users.FindByUsernameOrEmail(ctx, "alice")
	require.NoError(t, err)
	byEmail, err := repo.Users.FindByUsernameOrEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, byName.ID, byEmail.ID)

	_, err = repo.Users.FindByUsernameOrEmail(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)

	taken, err := repo.Users.UsernameOrEmailTaken(ctx, "alice", "other@example.com")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = repo.Users.UsernameOrEmailTaken(ctx, "bob", "bob@example.com")
	require.NoError(t, err)
	require.False(t, taken)
}

func TestStudioAndGameCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	studio, err := repo.Studios.Create(ctx, "Ghibli", "Tokyo")
	require.NoError(t, err)
	require.NotZero(t, studio.ID)

	studio, err = repo.Studios.Update(ctx, studio.ID, StudioParams{Location: strPtr("Koganei")})
	require.NoError(t, err)
	require.Equal(t, "Koganei", studio.Location)

	studios, err := repo.Studios.List(ctx)
	require.NoError(t, err)
	require.Len(t, studios, 1)

	require.NoError(t, repo.Studios.Delete(ctx, studio.ID))
	require.ErrorIs(t, repo.Studios.Delete(ctx, studio.ID), ErrNotFound)

	game, err := repo.Games.Create(ctx, "Outer Wilds", "Adventure")
	require.NoError(t, err)

	game, err = repo.Games.Update(ctx, game.ID, GameParams{Genre: strPtr("Exploration")})
	require.NoError(t, err)
	require.Equal(t, "Exploration", game.Genre)

	_, err = repo.Games.GetByID(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Games.Delete(ctx, game.ID))
}

func TestDuplicateUsernameRejectedBySchema(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Users.Create(ctx, "dup", "dup@example.com", "hash")
	require.NoError(t, err)

	_, err = repo.Users.Create(ctx, "dup", "other@example.com", "hash")
	require.Error(t, err)
}
