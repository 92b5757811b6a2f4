package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kitaconnect/kita-admin/internal/model"
	"github.com/kitaconnect/kita-admin/internal/repository"
)

// Store interfaces abstract the repositories so the services can be tested
// with in-memory stubs.

type RegistryStore interface {
	ListChildren(ctx context.Context) ([]model.Child, error)
	ListGuardians(ctx context.Context) ([]model.Guardian, error)
	GetGuardian(ctx context.Context, id uuid.UUID) (*model.Guardian, error)
	ListContracts(ctx context.Context) ([]model.Contract, error)
	ListGroups(ctx context.Context) ([]model.Group, error)
	CreateGuardian(ctx context.Context, guardian model.Guardian) (uuid.UUID, error)
	UpdateGuardian(ctx context.Context, guardian model.Guardian) error
	CreateChild(ctx context.Context, child model.Child) (uuid.UUID, error)
	UpdateChild(ctx context.Context, child model.Child) error
	CreateContract(ctx context.Context, contract model.Contract) (uuid.UUID, error)
	UpdateContract(ctx context.Context, contract model.Contract) error
}

type ScheduleStore interface {
	ListBookings(ctx context.Context, rng repository.DateRange) ([]model.ChildBooking, error)
	ListStaff(ctx context.Context) ([]model.Staff, error)
	ListShifts(ctx context.Context, rng repository.DateRange) ([]model.StaffShift, error)
	ListLeave(ctx context.Context, rng repository.DateRange) ([]model.StaffLeave, error)
	ListAbsences(ctx context.Context, rng repository.DateRange) ([]model.Absence, error)
	CreateBooking(ctx context.Context, booking model.ChildBooking) (uuid.UUID, error)
	CreateStaff(ctx context.Context, staff model.Staff) (uuid.UUID, error)
	CreateShift(ctx context.Context, shift model.StaffShift) (uuid.UUID, error)
	CreateLeave(ctx context.Context, leave model.StaffLeave) (uuid.UUID, error)
	CreateAbsence(ctx context.Context, absence model.Absence) (uuid.UUID, error)
}

type BoardStore interface {
	ListAnnouncements(ctx context.Context) ([]model.Announcement, error)
	ListEvents(ctx context.Context, rng repository.DateRange) ([]model.CalendarEvent, error)
	ListDiaryEntries(ctx context.Context, rng repository.DateRange) ([]model.DiaryEntry, error)
	CreateAnnouncement(ctx context.Context, a model.Announcement) (uuid.UUID, error)
	CreateEvent(ctx context.Context, e model.CalendarEvent) (uuid.UUID, error)
	CreateDiaryEntry(ctx context.Context, d model.DiaryEntry) (uuid.UUID, error)
}

// Cache entity keys. Writes invalidate the entity they touch.
const (
	entityChildren      = "children"
	entityGuardians     = "guardians"
	entityContracts     = "contracts"
	entityGroups        = "groups"
	entityBookings      = "bookings"
	entityStaff         = "staff"
	entityShifts        = "shifts"
	entityLeave         = "leave"
	entityAbsences      = "absences"
	entityAnnouncements = "announcements"
	entityEvents        = "events"
	entityDiary         = "diary"
)
