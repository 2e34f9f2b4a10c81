// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Property is a rentable listing owned by a landlord. Listing CRUD happens
// elsewhere; the ledger only reads it.
type Property struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Title      string
	Address    string
	TotalUnits int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewProperty creates a single-unit Property owned by ownerID.
func NewProperty(ownerID uuid.UUID, title, address string) *Property {
	now := time.Now().UTC()

	return &Property{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Title:      title,
		Address:    address,
		TotalUnits: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
