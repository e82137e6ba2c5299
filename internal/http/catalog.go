package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reelbase/reelbase/internal/repository"
)

// The /api/v1 catalog keeps the plainer contract of its predecessor:
// bare JSON bodies, {"message": ...} on 404, 204 with no body on delete,
// and uncaught errors funneled through one shared error responder.

type catalogHandler func(w http.ResponseWriter, r *http.Request) error

// errNotFoundMessage carries the entity-specific 404 message through the
// shared error funnel.
type errNotFoundMessage struct {
	message string
}

func (e errNotFoundMessage) Error() string { return e.message }

func (s *Server) catalog(h catalogHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		var notFound errNotFoundMessage
		if errors.As(err, &notFound) {
			s.catalogJSON(w, http.StatusNotFound, map[string]string{"message": notFound.message})
			return
		}
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("catalog handler failed")
		s.catalogJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}
}

func (s *Server) catalogJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error().Err(err).Msg("failed to encode catalog response")
		}
	}
}

func (s *Server) catalogRouter() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		s.catalogJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
	})

	r.Route("/studios", func(r chi.Router) {
		r.Post("/", s.catalog(s.handleCreateStudio))
		r.Get("/", s.catalog(s.handleListStudios))
		r.Get("/{id}", s.catalog(s.handleGetStudio))
		r.Put("/{id}", s.catalog(s.handleUpdateStudio))
		r.Delete("/{id}", s.catalog(s.handleDeleteStudio))
	})

	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.catalog(s.handleCreateGame))
		r.Get("/", s.catalog(s.handleListGames))
		r.Get("/{id}", s.catalog(s.handleGetGame))
		r.Put("/{id}", s.catalog(s.handleUpdateGame))
		r.Delete("/{id}", s.catalog(s.handleDeleteGame))
	})

	return r
}

type studioRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

func (s *Server) handleCreateStudio(w http.ResponseWriter, r *http.Request) error {
	var req studioRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.catalogJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return nil
	}
	if req.Name == nil || req.Location == nil {
		s.catalogJSON(w, http.StatusBadRequest, map[string]string{"message": "name and location are required"})
		return nil
	}

	studio, err := s.repo.Studios.Create(r.Context(), *req.Name, *req.Location)
	if err != nil {
		return err
	}
	s.catalogJSON(w, http.StatusCreated, studio)
	return nil
}

func (s *Server) handleListStudios(w http.ResponseWriter, r *http.Request) error {
	studios, err := s.repo.Studios.List(r.Context())
	if err != nil {
		return err
	}
	s.catalogJSON(w, http.StatusOK, studios)
	return nil
}

func (s *Server) handleGetStudio(w http.ResponseWriter, r *http.Request) error {
	id, err := uintParam(r, "id")
	if err != nil {
		return errNotFoundMessage{"Studio not found"}
	}
	studio, err := s.repo.Studios.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errNotFoundMessage{"Studio not found"}
		}
		return err
	}
	s.catalogJSON(w, http.StatusOK, studio)
	return nil
}

func (s *Server) handleUpdateStudio(w http.ResponseWriter, r *http.Request) error {
	id, err := uintParam(r, "id")
	if err != nil {
		return errNotFoundMessage{"Studio not found"}
	}

	var req studioRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.catalogJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return nil
	}

	studio, err := s.repo.Studios.Update(r.Context(), id, repository.StudioParams{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errNotFoundMessage{"Studio not found"}
		}
		return err
	}
	s.catalogJSON(w, http.StatusOK, studio)
	return nil
}

func (s *Server) handleDeleteStudio(w http.ResponseWriter, r *http.Request) error {
	id, err := uintParam(r, "id")
	if err != nil {
		return errNotFoundMessage{"Studio not found"}
	}
	if err := s.repo.Studios.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errNotFoundMessage{"Studio not found"}
		}
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

type gameRequest struct {
	Name  *string `json:"name"`
	Genre *string `json:"genre"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) error {
	var req gameRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.catalogJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return nil
	}
	if req.Name == nil || req.Genre == nil {
		s.catalogJSON(w, http.StatusBadRequest, map[string]string{"message": "name and genre are required"})
		return nil
	}

	game, err := s.repo.Games.Create(r.Context(), *req.Name, *req.Genre)
	if err != nil {
		return err
	}
	s.catalogJSON(w, http.StatusCreated, game)
	return nil
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) error {
	games, err := s.repo.Games.List(r.Context())
	if err != nil {
		return err
	}
	s.catalogJSON(w, http.StatusOK, games)
	return nil
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) error {
	id, err := uintParam(r, "id")
	if err != nil {
		return errNotFoundMessage{"Game not found"}
	}
	game, err := s.repo.Games.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errNotFoundMessage{"Game not found"}
		}
		return err
	}
	s.catalogJSON(w, http.StatusOK, game)
	return nil
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) error {
	id, err := uintParam(r, "id")
	if err != nil {
		return errNotFoundMessage{"Game not found"}
	}

	var req gameRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.catalogJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return nil
	}

	game, err := s.repo.Games.Update(r.Context(), id, repository.GameParams{
		Name:  req.Name,
		Genre: req.Genre,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errNotFoundMessage{"Game not found"}
		}
		return err
	}
	s.catalogJSON(w, http.StatusOK, game)
	return nil
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) error {
	id, err := uintParam(r, "id")
	if err != nil {
		return errNotFoundMessage{"Game not found"}
	}
	if err := s.repo.Games.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errNotFoundMessage{"Game not found"}
		}
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
