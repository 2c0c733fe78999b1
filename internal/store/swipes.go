package store

import (
	"context"

	"watchmatch/backend/internal/models"

	"gorm.io/gorm"
)

// AddSwipe records a swipe. No deduplication: a user may swipe the same
// title more than once and every record is kept.
func (s *Store) AddSwipe(ctx context.Context, userID uint, tmdbID int, liked bool) (*models.SwipeRecord, error) {
	swipe := models.SwipeRecord{UserID: userID, TmdbID: tmdbID, Liked: liked}
	if err := s.db.WithContext(ctx).Create(&swipe).Error; err != nil {
		return nil, err
	}
	return &swipe, nil
}

// MatchingMovieIDs computes the set of tmdb ids both users liked. Each id
// appears exactly once even when duplicate liked-swipes exist for it.
func (s *Store) MatchingMovieIDs(ctx context.Context, aID, bID uint) ([]int, error) {
	return matchingMovieIDs(s.db.WithContext(ctx), aID, bID)
}

func matchingMovieIDs(db *gorm.DB, aID, bID uint) ([]int, error) {
	var ids []int
	err := db.
		Table("swipe_records s1").
		Distinct("s1.tmdb_id").
		Joins("JOIN swipe_records s2 ON s2.tmdb_id = s1.tmdb_id AND s2.user_id = ? AND s2.liked = ?", bID, true).
		Where("s1.user_id = ? AND s1.liked = ?", aID, true).
		Order("s1.tmdb_id").
		Pluck("s1.tmdb_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// RecordSwipe inserts a swipe and runs match detection in the same
// transaction: when the swipe is a like, the user has a partner, the
// partner also liked the title, and no match for (title, pair) exists
// yet, a new Match is created. The returned match is non-nil only when a
// row was created by this call, so repeat swipes on an already-matched
// title do not report a fresh match.
func (s *Store) RecordSwipe(ctx context.Context, userID uint, tmdbID int, liked bool) (*models.SwipeRecord, *models.Match, error) {
	var swipe models.SwipeRecord
	var match *models.Match

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		swipe = models.SwipeRecord{UserID: userID, TmdbID: tmdbID, Liked: liked}
		if err := tx.Create(&swipe).Error; err != nil {
			return err
		}
		if !liked {
			return nil
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if user.PartnerID == nil {
			return nil
		}

		mutual, err := matchingMovieIDs(tx, userID, *user.PartnerID)
		if err != nil {
			return err
		}
		if !containsInt(mutual, tmdbID) {
			return nil
		}

		created, existing, err := createMatchIfAbsent(tx, tmdbID, userID, *user.PartnerID)
		if err != nil {
			return err
		}
		if created {
			match = existing
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &swipe, match, nil
}

func containsInt(ids []int, want int) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}
