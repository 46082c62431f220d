package models

import "time"

// Checkpoint statuses. OVERDUE is settable, never computed; the store
// imposes no transition order beyond membership in this enum.
const (
	CheckpointStatusPending    = "PENDING"
	CheckpointStatusInProgress = "IN_PROGRESS"
	CheckpointStatusCompleted  = "COMPLETED"
	CheckpointStatusOverdue    = "OVERDUE"
)

// Checkpoint belongs to exactly one goal. CompletedDate is set only on
// completion.
type Checkpoint struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	GoalID        int64     `gorm:"index;not null" json:"goal_id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	DueDate       string    `gorm:"size:10" json:"due_date"`
	Status        string    `gorm:"size:16;default:'PENDING'" json:"status"`
	CompletedDate *string   `gorm:"size:10" json:"completed_date,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidCheckpointStatus reports whether s is one of the checkpoint status values.
func ValidCheckpointStatus(s string) bool {
	switch s {
	case CheckpointStatusPending, CheckpointStatusInProgress, CheckpointStatusCompleted, CheckpointStatusOverdue:
		return true
	}
	return false
}

// CheckpointPatch carries a partial checkpoint update; only non-nil
// fields are applied.
type CheckpointPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
}
