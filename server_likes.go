package main

import (
	"encoding/json"
	"net/http"
)

type likeRequest struct {
	Username string `json:"username"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	URL      string `json:"url"`
}

func (s *server) postLikeSong(w http.ResponseWriter, r *http.Request) {
	var body likeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.renderMessage(w, http.StatusBadRequest, "Missing fields")
		return
	}

	if body.Username == "" || body.Title == "" || body.URL == "" {
		s.renderMessage(w, http.StatusBadRequest, "Missing fields")
		return
	}

	if body.Artist == "" {
		body.Artist = "Unknown"
	}

	// Likes are append-only, liking the same song twice is allowed.
	liked := &LikedSong{
		Username: body.Username,
		Title:    body.Title,
		Artist:   body.Artist,
		URL:      body.URL,
	}
	if err := s.db.CreateLikedSong(r.Context(), liked); err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	s.renderMessage(w, http.StatusCreated, "Song liked")
}

func (s *server) getLikedSongs(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		s.renderMessage(w, http.StatusBadRequest, "Username is required")
		return
	}

	likes, err := s.db.GetLikedSongs(r.Context(), username)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	result := make([]Song, 0, len(likes))
	for _, song := range likes {
		result = append(result, Song{
			Title:  song.Title,
			Artist: song.Artist,
			URL:    song.URL,
		})
	}

	s.renderJSON(w, http.StatusOK, result)
}
