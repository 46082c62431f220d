package models

import "time"

// Buddy request statuses. PENDING is the only state that transitions;
// ACCEPTED and REJECTED are terminal.
const (
	BuddyStatusPending  = "PENDING"
	BuddyStatusAccepted = "ACCEPTED"
	BuddyStatusRejected = "REJECTED"
)

// BuddyRequest pairs a requester with a receiver. At most one request
// exists per ordered (requester, receiver) pair, regardless of status.
type BuddyRequest struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	RequesterID int64     `gorm:"index;not null" json:"requester_id"`
	ReceiverID  int64     `gorm:"index;not null" json:"receiver_id"`
	Date        string    `gorm:"size:10" json:"date"`
	Status      string    `gorm:"size:16;default:'PENDING'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Requester   *User     `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Receiver    *User     `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
