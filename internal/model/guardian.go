package model

import (
	"time"

	"github.com/google/uuid"
)

type Guardian struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          *string
	Phone          *string
	PhoneSecondary *string
	AddressStreet  *string
	AddressZip     *string
	AddressCity    *string
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
