package model

import (
	"time"

	"github.com/google/uuid"
)

type Staff struct {
	ID              uuid.UUID
	FirstName       string
	LastName        string
	Email           *string
	Phone           *string
	Position        *string
	WeeklyHours     *float64
	HourlyRate      *float64
	EmploymentStart *time.Time
	EmploymentEnd   *time.Time
	IsActive        bool
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ShiftType string

const (
	ShiftTypeMorning   ShiftType = "morning"
	ShiftTypeAfternoon ShiftType = "afternoon"
	ShiftTypeFullDay   ShiftType = "full_day"
	ShiftTypeCustom    ShiftType = "custom"
)

type StaffShift struct {
	ID           uuid.UUID
	StaffID      uuid.UUID
	GroupID      *uuid.UUID
	Date         time.Time
	StartTime    string
	EndTime      string
	ShiftType    ShiftType
	BreakMinutes int
	Notes        *string
	CreatedAt    time.Time

	Staff *Staff
	Group *Group
}

type LeaveType string

const (
	LeaveTypeVacation LeaveType = "vacation"
	LeaveTypeSick     LeaveType = "sick"
	LeaveTypeTraining LeaveType = "training"
	LeaveTypeOther    LeaveType = "other"
)

type StaffLeave struct {
	ID         uuid.UUID
	StaffID    uuid.UUID
	LeaveType  LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Approved   bool
	ApprovedBy *uuid.UUID
	Notes      *string
	CreatedAt  time.Time

	Staff *Staff
}
