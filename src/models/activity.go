package models

import "gotix/src/types"

// ActivityEntry is an append-only record. Entries are created by the core
// services inside their own transactions and never updated or deleted.
type ActivityEntry struct {
	ID          uint               `gorm:"primarykey" json:"id"`
	Type        types.ActivityType `json:"type,omitempty"`
	Description string             `json:"description,omitempty"`
	Actor       string             `json:"actor,omitempty"`

	types.Timestamps
}
