package store

import (
	"context"

	"watchmatch/backend/internal/models"

	"gorm.io/gorm"
)

// CreatePartnerRequest records a pairing request. The initial status is
// forced to pending regardless of what the caller supplies elsewhere.
func (s *Store) CreatePartnerRequest(ctx context.Context, senderID uint, receiverUsername string) (*models.PartnerRequest, error) {
	request := models.PartnerRequest{
		SenderID:         senderID,
		ReceiverUsername: receiverUsername,
		Status:           models.RequestPending,
	}
	if err := s.db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// PartnerRequestsFor lists requests where the user is the sender, or the
// request's receiver username equals the user's current username. The
// lookup is by name, so a renamed user sees a different set of requests.
func (s *Store) PartnerRequestsFor(ctx context.Context, userID uint) ([]models.PartnerRequest, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var requests []models.PartnerRequest
	err = s.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_username = ?", userID, user.Username).
		Order("id").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetPartnerRequest fetches a request by id.
func (s *Store) GetPartnerRequest(ctx context.Context, id uint) (*models.PartnerRequest, error) {
	var request models.PartnerRequest
	if err := s.db.WithContext(ctx).First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdatePartnerRequestStatus overwrites a request's status. The store does
// not guard terminal states; the API layer enforces "one response per
// request".
func (s *Store) UpdatePartnerRequestStatus(ctx context.Context, id uint, status models.PartnerRequestStatus) (*models.PartnerRequest, error) {
	var request models.PartnerRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, id).Error; err != nil {
			return err
		}
		request.Status = status
		return tx.Model(&request).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}
