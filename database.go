package main

import (
	"context"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type database struct {
	db *gorm.DB
}

// newDatabase opens the sqlite store and migrates the schema. TranslateError
// turns unique constraint violations into [gorm.ErrDuplicatedKey], which the
// handlers rely on for username and share id conflicts.
func newDatabase(path string) (*database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&User{}, &Playlist{}, &LikedSong{})
	if err != nil {
		return nil, err
	}

	return &database{
		db: db,
	}, nil
}

func (d *database) Close() error {
	return nil
}

func (d *database) CreateUser(ctx context.Context, user *User) error {
	return d.db.WithContext(ctx).Create(user).Error
}

func (d *database) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user *User
	return user, d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
}

func (d *database) CreatePlaylist(ctx context.Context, playlist *Playlist) error {
	return d.db.WithContext(ctx).Create(playlist).Error
}

func (d *database) GetPlaylists(ctx context.Context, username string) ([]*Playlist, error) {
	var playlists []*Playlist
	return playlists, d.db.WithContext(ctx).Where("username = ?", username).Find(&playlists).Error
}

func (d *database) GetPlaylist(ctx context.Context, id uint64) (*Playlist, error) {
	var playlist *Playlist
	return playlist, d.db.WithContext(ctx).First(&playlist, id).Error
}

func (d *database) GetPlaylistByShareID(ctx context.Context, shareID string) (*Playlist, error) {
	var playlist *Playlist
	return playlist, d.db.WithContext(ctx).Where("share_id = ?", shareID).First(&playlist).Error
}

func (d *database) UpdatePlaylist(ctx context.Context, playlist *Playlist) error {
	return d.db.WithContext(ctx).Save(playlist).Error
}

func (d *database) DeletePlaylist(ctx context.Context, id uint64) error {
	result := d.db.WithContext(ctx).Delete(&Playlist{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (d *database) ClearPlaylists(ctx context.Context) error {
	return d.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Playlist{}).Error
}

func (d *database) CreateLikedSong(ctx context.Context, song *LikedSong) error {
	return d.db.WithContext(ctx).Create(song).Error
}

func (d *database) GetLikedSongs(ctx context.Context, username string) ([]*LikedSong, error) {
	var songs []*LikedSong
	return songs, d.db.WithContext(ctx).Where("username = ?", username).Find(&songs).Error
}
