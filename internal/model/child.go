package model

import (
	"time"

	"github.com/google/uuid"
)

type Child struct {
	ID                uuid.UUID
	FirstName         string
	LastName          string
	BirthDate         time.Time
	GroupID           *uuid.UUID
	PrimaryGuardianID *uuid.UUID
	PhotoPermission   bool
	Allergies         []string
	AvatarURL         *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Set when the fetch expanded the relation, nil otherwise.
	Group           *Group
	PrimaryGuardian *Guardian
}
