package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLexicalMatcher(t *testing.T) {
	testCases := []struct {
		name  string
		text  string
		genre string
	}{
		{"keyword as substring", "I feel so sad today", "blues"},
		{"case insensitive", "SO HAPPY right now", "pop"},
		{"angry", "angry at everything", "metal"},
		{"chill", "just want to chill", "jazz"},
		{"focus", "need to focus on work", "classical"},
		{"party", "party all night", "disco"},
		{"hype", "totally hyped", "rock"},
		{"first declared keyword wins", "happy but also a bit sad", "blues"},
		{"no keyword falls back to pop", "meh, whatever", "pop"},
		{"keyword inside a word", "sadness everywhere", "blues"},
	}

	matcher := newLexicalMatcher()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			genre, songs, err := matcher.Match(context.Background(), tc.text)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if songs != nil {
				t.Fatalf("expected no precomputed songs, got %d", len(songs))
			}
			if genre != tc.genre {
				t.Errorf("expected genre %q, got %q", tc.genre, genre)
			}
		})
	}
}

func TestRemoteMatcher(t *testing.T) {
	t.Run("maps results to songs", func(t *testing.T) {
		var gotBody string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			gotBody = string(raw)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"results": [
				{"filename": "blues.00001.wav", "full_path": "/data/audio/blues.00001.wav"},
				{"filename": "jazz.00042.wav", "full_path": "/data/audio/jazz.00042.wav"}
			]}`))
		}))
		defer ts.Close()

		matcher := newRemoteMatcher(ts.URL, "http://localhost:8080", time.Second)
		genre, songs, err := matcher.Match(context.Background(), "dreamy evening vibes")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if genre != "" {
			t.Errorf("expected no genre, got %q", genre)
		}
		if gotBody != `{"text":"dreamy evening vibes"}` {
			t.Errorf("unexpected request body: %s", gotBody)
		}
		if len(songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(songs))
		}
		if songs[0].Title != "blues.00001.wav" {
			t.Errorf("unexpected title: %s", songs[0].Title)
		}
		if songs[0].Artist != "Unknown" {
			t.Errorf("unexpected artist: %s", songs[0].Artist)
		}
		if songs[0].URL != "http://localhost:8080/static/audio/blues.00001.wav" {
			t.Errorf("unexpected url: %s", songs[0].URL)
		}
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		matcher := newRemoteMatcher(ts.URL, "http://localhost:8080", time.Second)
		_, _, err := matcher.Match(context.Background(), "sad")
		if err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("definitely not json"))
		}))
		defer ts.Close()

		matcher := newRemoteMatcher(ts.URL, "http://localhost:8080", time.Second)
		_, _, err := matcher.Match(context.Background(), "sad")
		if err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("unreachable service is an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()

		matcher := newRemoteMatcher(ts.URL, "http://localhost:8080", time.Second)
		_, _, err := matcher.Match(context.Background(), "sad")
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}
