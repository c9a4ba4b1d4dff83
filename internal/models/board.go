package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Board is the single persisted drawing document of a user
type Board struct {
	ID          uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_boards_user_id" json:"user_id"`
	Snapshot    datatypes.JSON `json:"snapshot"`
	SnapshotURL *string        `json:"snapshot_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
}
