package entities

import "time"

// Campaign is the ownership root for encounters. Every encounter belongs
// to exactly one campaign, and callers may only touch encounters in
// campaigns they own.
type Campaign struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	OwnerID     string    `json:"owner_id" gorm:"index"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	System      string    `json:"system,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
