package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Preferences holds a user's catalog filtering preferences.
// The field is replaced as a whole on update, never merged.
type Preferences struct {
	Genres         []string `json:"genres"`
	Platforms      []string `json:"platforms"`
	FavoriteActors []string `json:"favoriteActors"`
}

// Value serializes preferences into a JSON column.
func (p Preferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan deserializes preferences from a JSON column.
func (p *Preferences) Scan(value interface{}) error {
	if value == nil {
		*p = Preferences{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("preferences: unsupported column type")
	}
}

// User represents a registered user. PartnerID references the single other
// user this user is paired with for match detection; pairing is mutual and
// both sides are written in one transaction.
type User struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"size:255;uniqueIndex;not null" json:"username"`
	PasswordHash string       `gorm:"size:255;not null" json:"-"`
	PartnerID    *uint        `gorm:"index" json:"partnerId"`
	Preferences  *Preferences `gorm:"type:text" json:"preferences"`
}
