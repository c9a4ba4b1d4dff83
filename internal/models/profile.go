package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile carries the per-user api token used by the snapshot endpoint.
// ID matches the user id issued by the identity provider.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	APIToken  string    `gorm:"not null;uniqueIndex" json:"api_token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
