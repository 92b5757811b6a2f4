package model

import (
	"time"

	"github.com/google/uuid"
)

type AbsenceType string

const (
	AbsenceTypeSick        AbsenceType = "sick"
	AbsenceTypeVacation    AbsenceType = "vacation"
	AbsenceTypeLate        AbsenceType = "late"
	AbsenceTypeEarlyPickup AbsenceType = "early_pickup"
	AbsenceTypeOther       AbsenceType = "other"
)

type Absence struct {
	ID        uuid.UUID
	ChildID   uuid.UUID
	Type      AbsenceType
	StartDate time.Time
	EndDate   time.Time
	Note      *string
	// Nil when reported without an authenticated session.
	ReportedBy *uuid.UUID
	CreatedAt  time.Time

	Child *Child
}
