package store

import (
	"context"
	"errors"

	"watchmatch/backend/internal/models"

	"gorm.io/gorm"
)

// CreateMatch records a match for a movie and an unordered user pair.
// When a match for (tmdbID, {aID, bID}) already exists the existing row
// is returned and created is false.
func (s *Store) CreateMatch(ctx context.Context, tmdbID int, aID, bID uint) (*models.Match, bool, error) {
	var match *models.Match
	var created bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, match, err = createMatchIfAbsent(tx, tmdbID, aID, bID)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return match, created, nil
}

func createMatchIfAbsent(tx *gorm.DB, tmdbID int, aID, bID uint) (bool, *models.Match, error) {
	var existing models.Match
	err := tx.
		Where("tmdb_id = ? AND ((user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?))",
			tmdbID, aID, bID, bID, aID).
		First(&existing).Error
	if err == nil {
		return false, &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil, err
	}

	match := models.Match{TmdbID: tmdbID, User1ID: aID, User2ID: bID}
	if err := tx.Create(&match).Error; err != nil {
		return false, nil, err
	}
	return true, &match, nil
}

// MatchesFor lists matches where the user is on either side, in insertion
// order.
func (s *Store) MatchesFor(ctx context.Context, userID uint) ([]models.Match, error) {
	var matches []models.Match
	err := s.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("id").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
