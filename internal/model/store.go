package model

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a tenant. All catalog entities belong to exactly one store.
type Store struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerID   string    `json:"owner_id" gorm:"type:varchar(255);index;not null;comment:'Identity of the user owning this store'"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewID returns a new opaque entity identifier
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is syntactically usable as an entity identifier.
// Malformed ids would otherwise be rejected by the uuid columns with a
// storage error.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
