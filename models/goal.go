package models

import "time"

// Goal statuses. Progress is derived from checkpoints except for an
// explicit complete, which forces COMPLETED/100.
const (
	GoalStatusActive    = "ACTIVE"
	GoalStatusCompleted = "COMPLETED"
	GoalStatusPaused    = "PAUSED"
	GoalStatusCancelled = "CANCELLED"
)

// Goal belongs to one user and owns zero or more checkpoints.
// Date fields are calendar dates in YYYY-MM-DD form.
type Goal struct {
	ID          int64        `gorm:"primaryKey" json:"id"`
	UserID      int64        `gorm:"index;not null" json:"user_id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	StartDate   string       `gorm:"size:10" json:"start_date"`
	EndDate     string       `gorm:"size:10" json:"end_date"`
	Status      string       `gorm:"size:16;default:'ACTIVE'" json:"status"`
	Progress    int          `gorm:"default:0" json:"progress"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Checkpoints []Checkpoint `gorm:"foreignKey:GoalID" json:"checkpoints,omitempty"`
}

// ValidGoalStatus reports whether s is one of the goal status values.
func ValidGoalStatus(s string) bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	}
	return false
}

// GoalPatch carries a partial goal update; only non-nil fields are applied.
// Progress is intentionally absent: it is derived, not settable.
type GoalPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Status      *string `json:"status"`
}
