package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	shareIDLength      = 8
	maxShareIDAttempts = 5
)

var (
	errSongsMissing = errors.New("songs are required")
	errSongsShape   = errors.New("songs must be a list of objects")
)

type playlistRequest struct {
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Songs    json.RawMessage `json:"songs"`
}

// songsProvided reports whether the songs field carried a value at all.
// Absent and JSON null both count as "not provided".
func songsProvided(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// validateSongs checks that raw is a non-empty JSON array whose elements are
// all objects. Element contents are deliberately not inspected: clients may
// store whatever song shape they like and it round-trips untouched.
func validateSongs(raw json.RawMessage) error {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return errSongsShape
	}
	if len(elements) == 0 {
		return errSongsMissing
	}
	for _, element := range elements {
		var obj map[string]interface{}
		if err := json.Unmarshal(element, &obj); err != nil || obj == nil {
			return errSongsShape
		}
	}
	return nil
}

func newShareID() string {
	return uuid.NewString()[:shareIDLength]
}

func (s *server) postPlaylist(w http.ResponseWriter, r *http.Request) {
	var body playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.renderMessage(w, http.StatusBadRequest, "Missing data")
		return
	}

	if body.Username == "" || body.Name == "" || !songsProvided(body.Songs) {
		s.renderMessage(w, http.StatusBadRequest, "Missing data")
		return
	}

	switch err := validateSongs(body.Songs); {
	case errors.Is(err, errSongsMissing):
		s.renderMessage(w, http.StatusBadRequest, "Missing data")
		return
	case err != nil:
		s.renderMessage(w, http.StatusBadRequest, "Songs must be a list of objects")
		return
	}

	playlist := &Playlist{
		Username: body.Username,
		Name:     body.Name,
		Songs:    string(body.Songs),
	}

	// The share id is a truncated uuid, so collisions are rare but real.
	// The unique index catches them and we retry with a fresh id.
	var err error
	for attempt := 0; attempt < maxShareIDAttempts; attempt++ {
		playlist.ShareID = newShareID()
		err = s.db.CreatePlaylist(r.Context(), playlist)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	s.renderJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Playlist saved successfully",
		"share_id":  playlist.ShareID,
		"share_url": s.baseURL + "/shared/" + playlist.ShareID,
	})
}

func (s *server) getPlaylists(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		s.renderMessage(w, http.StatusBadRequest, "Username is required")
		return
	}

	playlists, err := s.db.GetPlaylists(r.Context(), username)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	result := make([]map[string]interface{}, 0, len(playlists))
	for _, playlist := range playlists {
		result = append(result, map[string]interface{}{
			"id":       playlist.ID,
			"name":     playlist.Name,
			"songs":    json.RawMessage(playlist.Songs),
			"share_id": playlist.ShareID,
		})
	}

	s.renderJSON(w, http.StatusOK, result)
}

type playlistUpdateRequest struct {
	Name  string          `json:"name"`
	Songs json.RawMessage `json:"songs"`
}

func (s *server) putPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		s.renderMessage(w, http.StatusNotFound, "Playlist not found")
		return
	}

	playlist, err := s.db.GetPlaylist(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.renderMessage(w, http.StatusNotFound, "Playlist not found")
		return
	} else if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	var body playlistUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.renderMessage(w, http.StatusBadRequest, "Invalid song format")
		return
	}

	// Validate before touching the record at all: a bad songs payload must
	// not leave a half-applied name change behind.
	if songsProvided(body.Songs) {
		if err := validateSongs(body.Songs); err != nil {
			s.renderMessage(w, http.StatusBadRequest, "Invalid song format")
			return
		}
	}

	// An empty name means "not provided", matching the save endpoint's
	// required-field semantics.
	if body.Name != "" {
		playlist.Name = body.Name
	}
	if songsProvided(body.Songs) {
		playlist.Songs = string(body.Songs)
	}

	if err := s.db.UpdatePlaylist(r.Context(), playlist); err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	s.renderMessage(w, http.StatusOK, "Playlist updated")
}

func (s *server) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		s.renderMessage(w, http.StatusNotFound, "Playlist not found")
		return
	}

	err = s.db.DeletePlaylist(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.renderMessage(w, http.StatusNotFound, "Playlist not found")
		return
	} else if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	s.renderMessage(w, http.StatusOK, "Playlist deleted")
}

func (s *server) postClearPlaylists(w http.ResponseWriter, r *http.Request) {
	if err := s.db.ClearPlaylists(r.Context()); err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	s.renderMessage(w, http.StatusOK, "All playlists deleted")
}

func (s *server) getSharedPlaylist(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "share_id")

	playlist, err := s.db.GetPlaylistByShareID(r.Context(), shareID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.renderMessage(w, http.StatusNotFound, "Playlist not found")
		return
	} else if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	s.renderJSON(w, http.StatusOK, map[string]interface{}{
		"name":     playlist.Name,
		"songs":    json.RawMessage(playlist.Songs),
		"share_id": playlist.ShareID,
	})
}

func extractID(r *http.Request) (uint64, error) {
	idStr := chi.URLParam(r, "id")
	return strconv.ParseUint(idStr, 10, 64)
}
