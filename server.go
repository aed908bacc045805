package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type server struct {
	*chi.Mux
	db      *database
	catalog map[string][]Song
	matcher MoodMatcher
	baseURL string
}

func newServer(db *database, catalog map[string][]Song, matcher MoodMatcher, baseURL, audioDir string) *server {
	s := &server{
		Mux:     chi.NewRouter(),
		db:      db,
		catalog: catalog,
		matcher: matcher,
		baseURL: strings.TrimRight(baseURL, "/"),
	}

	s.Use(middleware.RequestID)
	s.Use(middleware.Logger)
	s.Use(middleware.Recoverer)

	s.Post("/register", s.postRegister)
	s.Post("/login", s.postLogin)
	s.Post("/recommend", s.postRecommend)
	s.Post("/playlist", s.postPlaylist)
	s.Get("/playlists", s.getPlaylists)
	s.Put("/playlist/{id}", s.putPlaylist)
	s.Delete("/playlist/{id}", s.deletePlaylist)
	s.Post("/clear_playlists", s.postClearPlaylists)
	s.Get("/shared/{share_id}", s.getSharedPlaylist)
	s.Post("/like_song", s.postLikeSong)
	s.Get("/liked_songs", s.getLikedSongs)
	s.Handle("/static/audio/*", http.StripPrefix("/static/audio/", http.FileServer(http.Dir(audioDir))))

	return s
}

func (s *server) renderJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("serving json", "error", err)
	}
}

// renderMessage writes the `{"message": ...}` shape every non-payload
// response uses.
func (s *server) renderMessage(w http.ResponseWriter, code int, message string) {
	s.renderJSON(w, code, map[string]string{"message": message})
}

// renderError is for server-side failures only. Client errors get a fixed
// message via renderMessage so internals never leak.
func (s *server) renderError(w http.ResponseWriter, code int, reqErr error) {
	slog.Error("serving error", "status", code, "error", reqErr)
	s.renderMessage(w, code, reqErr.Error())
}
