package main

import "math/rand"

// sampleSongs returns a uniformly random subset of size min(n, len(songs)),
// without replacement. The input slice is not modified and the result is
// never nil, so it marshals as a JSON array.
func sampleSongs(songs []Song, n int) []Song {
	if n > len(songs) {
		n = len(songs)
	}
	if n <= 0 {
		return []Song{}
	}

	picked := make([]Song, len(songs))
	copy(picked, songs)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}
