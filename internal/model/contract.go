package model

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "active"
	ContractStatusPending    ContractStatus = "pending"
	ContractStatusTerminated ContractStatus = "terminated"
	ContractStatusExpired    ContractStatus = "expired"
)

type ContractType string

const (
	ContractTypeFlexible ContractType = "flexible"
	ContractTypeHalfDay  ContractType = "halbtags"
	ContractTypeFullDay  ContractType = "ganztags"
	ContractTypeHourly   ContractType = "stundenweise"
)

type Contract struct {
	ID              uuid.UUID
	ContractNumber  *string
	ChildID         uuid.UUID
	GuardianID      uuid.UUID
	ContractType    ContractType
	Status          ContractStatus
	StartDate       time.Time
	EndDate         *time.Time
	MonthlyFee      *float64
	MealFee         *float64
	SubsidyAmount   *float64
	DiscountPercent *float64
	AdditionalFees  *float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Child    *Child
	Guardian *Guardian
}
