package main

// Song is the shape returned by recommendations and stored in likes.
type Song struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
}

type Playlist struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"not null"`
	Name     string `json:"name" gorm:"not null"`
	// Songs holds the raw JSON array exactly as the client sent it, so
	// unknown fields survive the round trip.
	Songs   string `json:"-" gorm:"not null"`
	ShareID string `json:"share_id" gorm:"uniqueIndex;not null"`
}

type LikedSong struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"not null"`
	Title    string `json:"title" gorm:"not null"`
	Artist   string `json:"artist"`
	URL      string `json:"url" gorm:"not null"`
}
