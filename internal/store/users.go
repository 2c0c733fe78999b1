package store

import (
	"context"
	"errors"

	"watchmatch/backend/internal/models"

	"gorm.io/gorm"
)

// GetUser fetches a user by id. Returns gorm.ErrRecordNotFound when absent.
func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername fetches a user by exact, case-sensitive username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user with no partner. Username uniqueness is
// enforced here, not left to the caller.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string, prefs *models.Preferences) (*models.User, error) {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Preferences:  prefs,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ?", username).First(&existing).Error
		if err == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserPreferences replaces the entire preferences field.
func (s *Store) UpdateUserPreferences(ctx context.Context, id uint, prefs *models.Preferences) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		user.Preferences = prefs
		return tx.Model(&user).Update("preferences", prefs).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetPartner updates one user's partner reference. A nil partnerID clears
// the pairing. The partner id itself is not validated; use PairUsers for
// the symmetric write.
func (s *Store) SetPartner(ctx context.Context, userID uint, partnerID *uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		user.PartnerID = partnerID
		return tx.Model(&user).Update("partner_id", partnerID).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// PairUsers sets both users' partner references to each other in a single
// transaction, so a failure cannot leave an asymmetric pairing.
func (s *Store) PairUsers(ctx context.Context, aID, bID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, pair := range [][2]uint{{aID, bID}, {bID, aID}} {
			result := tx.Model(&models.User{}).Where("id = ?", pair[0]).Update("partner_id", pair[1])
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
