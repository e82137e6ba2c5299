package httpserver

import (
	"errors"
	"net/http"

	"github.com/reelbase/reelbase/internal/repository"
)

type ratingRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	movieID, err := uintParam(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, ok := userIDFrom(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Missing or invalid authentication information")
		return
	}

	if _, err := s.repo.Movies.GetByID(r.Context(), movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie not found")
			return
		}
		s.respondInternalError(w, err, "fetch movie for rating failed")
		return
	}

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if !s.checkRequest(w, req) {
		return
	}

	rating, created, err := s.repo.Ratings.Upsert(r.Context(), movieID, userID, req.Rating)
	if err != nil {
		s.respondInternalError(w, err, "upsert rating failed")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.respondSuccess(w, status, envelope{"rating": rating})
}

func (s *Server) handleListUserRatings(w http.ResponseWriter, r *http.Request) {
	userID, err := uintParam(r, "userId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ratings, err := s.repo.Ratings.ListByUser(r.Context(), userID)
	if err != nil {
		s.respondInternalError(w, err, "list user ratings failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"ratings": ratings})
}

func (s *Server) handleGetUserRating(w http.ResponseWriter, r *http.Request) {
	userID, err := uintParam(r, "userId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	movieID, err := uintParam(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rating, err := s.repo.Ratings.Get(r.Context(), userID, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Rating not found")
			return
		}
		s.respondInternalError(w, err, "get user rating failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"rating": rating})
}
