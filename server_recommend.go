package main

import (
	"encoding/json"
	"net/http"
	"strings"
)

const recommendationLimit = 5

type recommendRequest struct {
	Text string `json:"text"`
}

func (s *server) postRecommend(w http.ResponseWriter, r *http.Request) {
	var body recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.renderMessage(w, http.StatusBadRequest, "Text is required")
		return
	}

	if strings.TrimSpace(body.Text) == "" {
		s.renderMessage(w, http.StatusBadRequest, "Text is required")
		return
	}

	genre, songs, err := s.matcher.Match(r.Context(), body.Text)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	if songs == nil {
		songs = s.catalog[genre]
	}

	s.renderJSON(w, http.StatusOK, map[string]interface{}{
		"songs": sampleSongs(songs, recommendationLimit),
	})
}
