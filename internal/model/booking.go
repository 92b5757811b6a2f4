package model

import (
	"time"

	"github.com/google/uuid"
)

// ChildBooking is an occupancy slot for a child on a single date.
type ChildBooking struct {
	ID         uuid.UUID
	ChildID    uuid.UUID
	ContractID *uuid.UUID
	GroupID    *uuid.UUID
	Date       time.Time
	StartTime  string
	EndTime    string
	IsExtra    bool
	Notes      *string
	CreatedAt  time.Time

	Child *Child
	Group *Group
}
