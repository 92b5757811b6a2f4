package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kitaconnect/kita-admin/internal/cache"
	"github.com/kitaconnect/kita-admin/internal/model"
	"github.com/kitaconnect/kita-admin/internal/repository"
	"github.com/kitaconnect/kita-admin/internal/view"
)

// ViewService assembles the derived back-office views: fetch the raw
// collections (through the query cache), enrich, filter, sort.
type ViewService struct {
	registry   RegistryStore
	schedule   ScheduleStore
	board      BoardStore
	cache      *cache.Store
	windowDays int
	log        zerolog.Logger
	now        func() time.Time
}

func NewViewService(
	registry RegistryStore,
	schedule ScheduleStore,
	board BoardStore,
	store *cache.Store,
	windowDays int,
	log zerolog.Logger,
) *ViewService {
	if windowDays <= 0 {
		windowDays = view.DefaultExitWindowDays
	}
	return &ViewService{
		registry:   registry,
		schedule:   schedule,
		board:      board,
		cache:      store,
		windowDays: windowDays,
		log:        log,
		now:        time.Now,
	}
}

// ChildRows returns the enriched Kinder table for the given filter and sort
// state.
func (s *ViewService) ChildRows(ctx context.Context, filter view.ChildFilter, sortState view.Sort) ([]view.ChildRow, error) {
	children, err := s.children(ctx)
	if err != nil {
		return nil, err
	}
	guardians, err := s.guardians(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := s.contracts(ctx)
	if err != nil {
		return nil, err
	}

	rows := view.BuildChildRows(children, guardians, contracts, s.now(), s.windowDays)
	rows = view.FilterChildRows(rows, filter)
	return view.SortChildRows(rows, sortState), nil
}

// Guardians returns the Eltern tab filtered by the free-text query.
func (s *ViewService) Guardians(ctx context.Context, filter view.GuardianFilter) ([]model.Guardian, error) {
	guardians, err := s.guardians(ctx)
	if err != nil {
		return nil, err
	}
	return view.FilterGuardians(guardians, filter), nil
}

// Guardian returns a single guardian record.
func (s *ViewService) Guardian(ctx context.Context, id uuid.UUID) (*model.Guardian, error) {
	guardian, err := s.registry.GetGuardian(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: guardian %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("fetch guardian: %w", err)
	}
	return guardian, nil
}

// ContractRows returns the Verträge tab filtered by query and status.
func (s *ViewService) ContractRows(ctx context.Context, filter view.ContractFilter) ([]view.ContractRow, error) {
	contracts, err := s.contracts(ctx)
	if err != nil {
		return nil, err
	}
	rows := view.BuildContractRows(contracts)
	return view.FilterContractRows(rows, filter), nil
}

// Groups returns all groups in listing order.
func (s *ViewService) Groups(ctx context.Context) ([]model.Group, error) {
	if cached, ok := s.cache.Get(entityGroups, ""); ok {
		return cached.([]model.Group), nil
	}
	groups, err := s.registry.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch groups: %w", err)
	}
	s.cache.Put(entityGroups, "", groups)
	return groups, nil
}

// OccupancyPlan buckets the bookings of the range by group.
func (s *ViewService) OccupancyPlan(ctx context.Context, rng repository.DateRange) (view.OccupancyPlan, error) {
	bookings, err := s.Bookings(ctx, rng)
	if err != nil {
		return view.OccupancyPlan{}, err
	}
	groups, err := s.Groups(ctx)
	if err != nil {
		return view.OccupancyPlan{}, err
	}
	from, to := rangeBounds(rng, s.now())
	return view.BuildOccupancyPlan(bookings, groups, from, to), nil
}

func (s *ViewService) Bookings(ctx context.Context, rng repository.DateRange) ([]model.ChildBooking, error) {
	params := rangeKey(rng)
	if cached, ok := s.cache.Get(entityBookings, params); ok {
		return cached.([]model.ChildBooking), nil
	}
	bookings, err := s.schedule.ListBookings(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	s.cache.Put(entityBookings, params, bookings)
	return bookings, nil
}

func (s *ViewService) Staff(ctx context.Context) ([]model.Staff, error) {
	if cached, ok := s.cache.Get(entityStaff, ""); ok {
		return cached.([]model.Staff), nil
	}
	staff, err := s.schedule.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch staff: %w", err)
	}
	s.cache.Put(entityStaff, "", staff)
	return staff, nil
}

func (s *ViewService) Shifts(ctx context.Context, rng repository.DateRange) ([]model.StaffShift, error) {
	params := rangeKey(rng)
	if cached, ok := s.cache.Get(entityShifts, params); ok {
		return cached.([]model.StaffShift), nil
	}
	shifts, err := s.schedule.ListShifts(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch shifts: %w", err)
	}
	s.cache.Put(entityShifts, params, shifts)
	return shifts, nil
}

func (s *ViewService) Leave(ctx context.Context, rng repository.DateRange) ([]model.StaffLeave, error) {
	params := rangeKey(rng)
	if cached, ok := s.cache.Get(entityLeave, params); ok {
		return cached.([]model.StaffLeave), nil
	}
	leave, err := s.schedule.ListLeave(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch leave: %w", err)
	}
	s.cache.Put(entityLeave, params, leave)
	return leave, nil
}

func (s *ViewService) Absences(ctx context.Context, rng repository.DateRange) ([]model.Absence, error) {
	params := rangeKey(rng)
	if cached, ok := s.cache.Get(entityAbsences, params); ok {
		return cached.([]model.Absence), nil
	}
	absences, err := s.schedule.ListAbsences(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch absences: %w", err)
	}
	s.cache.Put(entityAbsences, params, absences)
	return absences, nil
}

func (s *ViewService) Announcements(ctx context.Context) ([]model.Announcement, error) {
	if cached, ok := s.cache.Get(entityAnnouncements, ""); ok {
		return cached.([]model.Announcement), nil
	}
	announcements, err := s.board.ListAnnouncements(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch announcements: %w", err)
	}
	s.cache.Put(entityAnnouncements, "", announcements)
	return announcements, nil
}

func (s *ViewService) Events(ctx context.Context, rng repository.DateRange) ([]model.CalendarEvent, error) {
	params := rangeKey(rng)
	if cached, ok := s.cache.Get(entityEvents, params); ok {
		return cached.([]model.CalendarEvent), nil
	}
	events, err := s.board.ListEvents(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	s.cache.Put(entityEvents, params, events)
	return events, nil
}

func (s *ViewService) DiaryEntries(ctx context.Context, rng repository.DateRange) ([]model.DiaryEntry, error) {
	params := rangeKey(rng)
	if cached, ok := s.cache.Get(entityDiary, params); ok {
		return cached.([]model.DiaryEntry), nil
	}
	entries, err := s.board.ListDiaryEntries(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch diary entries: %w", err)
	}
	s.cache.Put(entityDiary, params, entries)
	return entries, nil
}

func (s *ViewService) children(ctx context.Context) ([]model.Child, error) {
	if cached, ok := s.cache.Get(entityChildren, ""); ok {
		return cached.([]model.Child), nil
	}
	children, err := s.registry.ListChildren(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch children: %w", err)
	}
	s.cache.Put(entityChildren, "", children)
	return children, nil
}

func (s *ViewService) guardians(ctx context.Context) ([]model.Guardian, error) {
	if cached, ok := s.cache.Get(entityGuardians, ""); ok {
		return cached.([]model.Guardian), nil
	}
	guardians, err := s.registry.ListGuardians(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch guardians: %w", err)
	}
	s.cache.Put(entityGuardians, "", guardians)
	return guardians, nil
}

func (s *ViewService) contracts(ctx context.Context) ([]model.Contract, error) {
	if cached, ok := s.cache.Get(entityContracts, ""); ok {
		return cached.([]model.Contract), nil
	}
	contracts, err := s.registry.ListContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch contracts: %w", err)
	}
	s.cache.Put(entityContracts, "", contracts)
	return contracts, nil
}

func rangeKey(rng repository.DateRange) string {
	key := ""
	if rng.From != nil {
		key += "from=" + rng.From.Format("2006-01-02")
	}
	if rng.To != nil {
		key += "&to=" + rng.To.Format("2006-01-02")
	}
	return key
}

// rangeBounds fills open range ends for display: an open start becomes today,
// an open end becomes the start.
func rangeBounds(rng repository.DateRange, now time.Time) (time.Time, time.Time) {
	from := now
	if rng.From != nil {
		from = *rng.From
	}
	to := from
	if rng.To != nil {
		to = *rng.To
	}
	return from, to
}
