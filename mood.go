package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MoodMatcher resolves free-text mood input to either a catalog genre or a
// precomputed list of songs. Exactly one of the two return values is set on
// success: the lexical matcher returns a genre, the remote one returns songs.
type MoodMatcher interface {
	Match(ctx context.Context, text string) (genre string, songs []Song, err error)
}

// moodGenres maps mood keywords to genres. Order matters: the first keyword
// contained in the input wins.
var moodGenres = []struct {
	keyword string
	genre   string
}{
	{"sad", "blues"},
	{"happy", "pop"},
	{"angry", "metal"},
	{"chill", "jazz"},
	{"focus", "classical"},
	{"party", "disco"},
	{"hype", "rock"},
}

const defaultGenre = "pop"

type lexicalMatcher struct{}

func newLexicalMatcher() *lexicalMatcher {
	return &lexicalMatcher{}
}

func (m *lexicalMatcher) Match(_ context.Context, text string) (string, []Song, error) {
	text = strings.ToLower(text)
	for _, entry := range moodGenres {
		if strings.Contains(text, entry.keyword) {
			return entry.genre, nil, nil
		}
	}
	return defaultGenre, nil, nil
}

// remoteMatcher delegates mood matching to an external similarity search
// service. Any failure of the outbound call is reported as a single
// recoverable error, the process keeps serving.
type remoteMatcher struct {
	baseURL    string
	audioBase  string
	httpClient *http.Client
}

func newRemoteMatcher(baseURL, audioBase string, timeout time.Duration) *remoteMatcher {
	return &remoteMatcher{
		baseURL:   strings.TrimRight(baseURL, "/"),
		audioBase: strings.TrimRight(audioBase, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type similarityRequest struct {
	Text string `json:"text"`
}

type similarityResult struct {
	Filename string `json:"filename"`
	FullPath string `json:"full_path"`
}

type similarityResponse struct {
	Results []similarityResult `json:"results"`
}

func (m *remoteMatcher) Match(ctx context.Context, text string) (string, []Song, error) {
	body, err := json.Marshal(similarityRequest{Text: text})
	if err != nil {
		return "", nil, fmt.Errorf("similarity search: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("similarity search: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("similarity search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", nil, fmt.Errorf("similarity search: status %d: %s", resp.StatusCode, raw)
	}

	var result similarityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", nil, fmt.Errorf("similarity search: malformed response: %w", err)
	}

	songs := make([]Song, 0, len(result.Results))
	for _, r := range result.Results {
		songs = append(songs, Song{
			Title:  r.Filename,
			Artist: "Unknown",
			URL:    m.audioBase + "/static/audio/" + r.Filename,
		})
	}
	return "", songs, nil
}
