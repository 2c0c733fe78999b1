package models

import "time"

// SwipeRecord is a user's binary like/dislike decision on one catalog
// movie. There is no uniqueness constraint on (UserID, TmdbID): a user
// may swipe the same title twice, and the earlier record is kept.
// Rows are append-only; they are never mutated or deleted.
type SwipeRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_swipes_user_liked,priority:1" json:"userId"`
	TmdbID    int       `gorm:"not null;index" json:"tmdbId"`
	Liked     bool      `gorm:"not null;index:idx_swipes_user_liked,priority:2" json:"liked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}
