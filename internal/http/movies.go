package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/reelbase/reelbase/internal/repository"
)

type movieCreateRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	ReleaseDate *string `json:"releaseDate"`
	Genre       *string `json:"genre"`
	PosterURL   *string `json:"posterUrl"`
}

type movieUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ReleaseDate *string `json:"releaseDate"`
	Genre       *string `json:"genre"`
	PosterURL   *string `json:"posterUrl"`
}

type associateActorsRequest struct {
	ActorIDs []uint `json:"actorIds" validate:"required,min=1"`
}

type updateActorsRequest struct {
	Add    []uint `json:"add"`
	Remove []uint `json:"remove"`
}

func parseReleaseDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, errors.New("releaseDate must follow YYYY-MM-DD format")
	}
	return &parsed, nil
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if !s.checkRequest(w, req) {
		return
	}

	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	movie, err := s.repo.Movies.Create(r.Context(), repository.MovieCreateParams{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ReleaseDate: releaseDate,
		Genre:       req.Genre,
		PosterURL:   req.PosterURL,
		CreatedBy:   s.optionalUserID(r),
	})
	if err != nil {
		s.respondInternalError(w, err, "create movie failed")
		return
	}
	s.respondSuccess(w, http.StatusCreated, envelope{"movie": movie})
}

// optionalUserID resolves the creator from a bearer token when one is
// present; movie CRUD itself stays unauthenticated.
func (s *Server) optionalUserID(r *http.Request) *uint {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil
	}
	claims, err := s.tokens.Validate(strings.TrimSpace(strings.TrimPrefix(header, prefix)))
	if err != nil {
		return nil
	}
	return &claims.UserID
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.repo.Movies.List(r.Context())
	if err != nil {
		s.respondInternalError(w, err, "list movies failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"movies": movies})
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie not found")
			return
		}
		s.respondInternalError(w, err, "get movie failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"movie": movie})
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req movieUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	movie, err := s.repo.Movies.Update(r.Context(), id, repository.MovieUpdateParams{
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Genre:       req.Genre,
		PosterURL:   req.PosterURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie not found")
			return
		}
		s.respondInternalError(w, err, "update movie failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"movie": movie})
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.Movies.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie not found")
			return
		}
		s.respondInternalError(w, err, "delete movie failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"message": "Movie deleted"})
}

func (s *Server) handleAssociateActors(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req associateActorsRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if !s.checkRequest(w, req) {
		return
	}

	added, err := s.repo.Movies.AddActors(r.Context(), id, req.ActorIDs)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie or actor not found")
			return
		}
		s.respondInternalError(w, err, "associate actors failed")
		return
	}
	s.respondSuccess(w, http.StatusCreated, envelope{"associations": added})
}

func (s *Server) handleUpdateActorAssociations(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateActorsRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	if err := s.repo.Movies.UpdateActors(r.Context(), id, req.Add, req.Remove); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie or actor not found")
			return
		}
		s.respondInternalError(w, err, "update actor associations failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"message": "Associations updated"})
}

func (s *Server) handleListPublicMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.repo.Movies.ListWithRatings(r.Context())
	if err != nil {
		s.respondInternalError(w, err, "list public movies failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"movies": movies})
}

func (s *Server) handleGetPublicMovie(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	movie, err := s.repo.Movies.GetWithRating(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie not found")
			return
		}
		s.respondInternalError(w, err, "get public movie failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"movie": movie})
}
