package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/reelbase/reelbase/internal/auth"
	"github.com/reelbase/reelbase/internal/repository"
)

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if !s.checkRequest(w, req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	taken, err := s.repo.Users.UsernameOrEmailTaken(r.Context(), username, email)
	if err != nil {
		s.respondInternalError(w, err, "signup uniqueness check failed")
		return
	}
	if taken {
		s.respondError(w, http.StatusBadRequest, "Username or email already taken")
		return
	}

	hash, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		s.respondInternalError(w, err, "hash password failed")
		return
	}

	user, err := s.repo.Users.Create(r.Context(), username, email, hash)
	if err != nil {
		s.respondInternalError(w, err, "create user failed")
		return
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		s.respondInternalError(w, err, "issue token failed")
		return
	}
	s.respondSuccess(w, http.StatusCreated, envelope{"token": token, "user": user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if !s.checkRequest(w, req) {
		return
	}

	user, err := s.repo.Users.FindByUsernameOrEmail(r.Context(), strings.TrimSpace(req.UsernameOrEmail))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.respondInternalError(w, err, "login lookup failed")
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		s.respondInternalError(w, err, "issue token failed")
		return
	}
	s.respondSuccess(w, http.StatusOK, envelope{"token": token, "user": user})
}
