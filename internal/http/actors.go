package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/reelbase/reelbase/internal/repository"
)

type actorCreateRequest struct {
	Name   string `json:"name" validate:"required"`
	Age    int    `json:"age" validate:"omitempty,min=0"`
	Gender string `json:"gender"`
}

type actorUpdateRequest struct {
	Name   *string `json:"name"`
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
}

func (s *Server) handleCreateActor(w http.ResponseWriter, r *http.Request) {
	var req actorCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if !s.checkRequest(w, req) {
		return
	}

	actor, err := s.repo.Actors.Create(r.Context(), repository.ActorCreateParams{
		Name:   strings.TrimSpace(req.Name),
		Age:    req.Age,
		Gender: req.Gender,
	})
	if err != nil {
		s.respondInternalError(w, err, "create actor failed")
		return
	}
	s.respondSuccess(w, http.StatusCreated, envelope{"actor": actor})
}

func (s *Server) handleListActors(w http.ResponseWriter, r *http.Request) {
	actors, err := s.repo.Actors.List(r.Context())
	if err != nil {
		s.respondInternalError(w, err, "list actors failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"actors": actors})
}

func (s *Server) handleGetActor(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "actorId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	actor, err := s.repo.Actors.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Actor not found")
			return
		}
		s.respondInternalError(w, err, "get actor failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"actor": actor})
}

func (s *Server) handleUpdateActor(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "actorId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req actorUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	actor, err := s.repo.Actors.Update(r.Context(), id, repository.ActorUpdateParams{
		Name:   req.Name,
		Age:    req.Age,
		Gender: req.Gender,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Actor not found")
			return
		}
		s.respondInternalError(w, err, "update actor failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"actor": actor})
}

func (s *Server) handleDeleteActor(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "actorId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.Actors.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Actor not found")
			return
		}
		s.respondInternalError(w, err, "delete actor failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"message": "Actor deleted"})
}

func (s *Server) handleListActorsMovies(w http.ResponseWriter, r *http.Request) {
	grouped, err := s.repo.Movies.ListWithActors(r.Context())
	if err != nil {
		s.respondInternalError(w, err, "list actor associations failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"movies": grouped})
}
