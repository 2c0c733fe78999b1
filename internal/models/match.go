package models

import "time"

// Match records that both members of a partner pair liked the same movie.
// At most one row exists per (TmdbID, unordered {User1ID, User2ID});
// creation checks for an existing row in the same transaction as the
// triggering swipe. Immutable after creation.
type Match struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TmdbID    int       `gorm:"not null;index" json:"tmdbId"`
	User1ID   uint      `gorm:"not null;index" json:"user1Id"`
	User2ID   uint      `gorm:"not null;index" json:"user2Id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

// Involves reports whether the given user is on either side of the match.
func (m Match) Involves(userID uint) bool {
	return m.User1ID == userID || m.User2ID == userID
}
