package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *server) postRegister(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.renderMessage(w, http.StatusBadRequest, "Missing fields")
		return
	}

	if body.Username == "" || body.Password == "" {
		s.renderMessage(w, http.StatusBadRequest, "Missing fields")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	user := &User{Username: body.Username, PasswordHash: string(hash)}

	// The unique index on username makes the existence check atomic with
	// the insert, so concurrent registers cannot both succeed.
	err = s.db.CreateUser(r.Context(), user)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		s.renderMessage(w, http.StatusBadRequest, "User already exists")
		return
	} else if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	s.renderMessage(w, http.StatusCreated, "User created successfully")
}

func (s *server) postLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.renderMessage(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	user, err := s.db.GetUserByUsername(r.Context(), body.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	// Unknown usernames and wrong passwords produce the same response, so
	// the endpoint cannot be used to probe which accounts exist.
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		s.renderMessage(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	s.renderMessage(w, http.StatusOK, "Login successful")
}
