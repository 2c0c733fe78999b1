package models

import "time"

// PartnerRequestStatus defines the state of a pairing request.
type PartnerRequestStatus string

const (
	// RequestPending means the request has been sent but not yet answered.
	RequestPending PartnerRequestStatus = "pending"

	// RequestAccepted is terminal; both users are paired when it is set.
	RequestAccepted PartnerRequestStatus = "accepted"

	// RequestRejected is terminal.
	RequestRejected PartnerRequestStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s PartnerRequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected:
		return true
	}
	return false
}

// Terminal reports whether s allows no further transitions.
func (s PartnerRequestStatus) Terminal() bool {
	return s == RequestAccepted || s == RequestRejected
}

// PartnerRequest is a pairing request from a sender to a receiver.
// The receiver is addressed by username, not id, and is resolved against
// the current username at read and respond time: a user who renames
// changes which pending requests are visible to them.
type PartnerRequest struct {
	ID               uint                 `gorm:"primaryKey" json:"id"`
	SenderID         uint                 `gorm:"not null;index" json:"senderId"`
	ReceiverUsername string               `gorm:"size:255;not null;index" json:"receiverUsername"`
	Status           PartnerRequestStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt        time.Time            `gorm:"autoCreateTime" json:"-"`
	UpdatedAt        time.Time            `gorm:"autoUpdateTime" json:"-"`
}
