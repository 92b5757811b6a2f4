package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kitaconnect/kita-admin/internal/cache"
	"github.com/kitaconnect/kita-admin/internal/model"
	"github.com/kitaconnect/kita-admin/internal/repository"
	"github.com/kitaconnect/kita-admin/internal/view"
)

// stubStores implements the three store interfaces with canned data and call
// counters.
type stubStores struct {
	children  []model.Child
	guardians []model.Guardian
	contracts []model.Contract
	groups    []model.Group
	bookings  []model.ChildBooking

	listChildrenCalls int
	listBookingsCalls int
	lastRange         repository.DateRange
	lastLeave         model.StaffLeave
	lastAbsence       model.Absence

	err error
}

func (s *stubStores) ListChildren(ctx context.Context) ([]model.Child, error) {
	s.listChildrenCalls++
	return s.children, s.err
}

func (s *stubStores) ListGuardians(ctx context.Context) ([]model.Guardian, error) {
	return s.guardians, s.err
}

func (s *stubStores) GetGuardian(ctx context.Context, id uuid.UUID) (*model.Guardian, error) {
	for i := range s.guardians {
		if s.guardians[i].ID == id {
			return &s.guardians[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStores) ListContracts(ctx context.Context) ([]model.Contract, error) {
	return s.contracts, s.err
}

func (s *stubStores) ListGroups(ctx context.Context) ([]model.Group, error) {
	return s.groups, s.err
}

func (s *stubStores) CreateGuardian(ctx context.Context, g model.Guardian) (uuid.UUID, error) {
	return uuid.New(), s.err
}
func (s *stubStores) UpdateGuardian(ctx context.Context, g model.Guardian) error { return s.err }
func (s *stubStores) CreateChild(ctx context.Context, c model.Child) (uuid.UUID, error) {
	return uuid.New(), s.err
}
func (s *stubStores) UpdateChild(ctx context.Context, c model.Child) error { return s.err }
func (s *stubStores) CreateContract(ctx context.Context, c model.Contract) (uuid.UUID, error) {
	return uuid.New(), s.err
}
func (s *stubStores) UpdateContract(ctx context.Context, c model.Contract) error { return s.err }

func (s *stubStores) ListBookings(ctx context.Context, rng repository.DateRange) ([]model.ChildBooking, error) {
	s.listBookingsCalls++
	s.lastRange = rng
	return s.bookings, s.err
}

func (s *stubStores) ListStaff(ctx context.Context) ([]model.Staff, error) { return nil, s.err }
func (s *stubStores) ListShifts(ctx context.Context, rng repository.DateRange) ([]model.StaffShift, error) {
	return nil, s.err
}
func (s *stubStores) ListLeave(ctx context.Context, rng repository.DateRange) ([]model.StaffLeave, error) {
	return nil, s.err
}
func (s *stubStores) ListAbsences(ctx context.Context, rng repository.DateRange) ([]model.Absence, error) {
	return nil, s.err
}
func (s *stubStores) CreateBooking(ctx context.Context, b model.ChildBooking) (uuid.UUID, error) {
	return uuid.New(), s.err
}
func (s *stubStores) CreateStaff(ctx context.Context, st model.Staff) (uuid.UUID, error) {
	return uuid.New(), s.err
}
func (s *stubStores) CreateShift(ctx context.Context, sh model.StaffShift) (uuid.UUID, error) {
	return uuid.New(), s.err
}
func (s *stubStores) CreateLeave(ctx context.Context, l model.StaffLeave) (uuid.UUID, error) {
	s.lastLeave = l
	return uuid.New(), s.err
}
func (s *stubStores) CreateAbsence(ctx context.Context, a model.Absence) (uuid.UUID, error) {
	s.lastAbsence = a
	return uuid.New(), s.err
}

func (s *stubStores) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	return nil, s.err
}
func (s *stubStores) ListEvents(ctx context.Context, rng repository.DateRange) ([]model.CalendarEvent, error) {
	return nil, s.err
}
func (s *stubStores) ListDiaryEntries(ctx context.Context, rng repository.DateRange) ([]model.DiaryEntry, error) {
	return nil, s.err
}
func (s *stubStores) CreateAnnouncement(ctx context.Context, a model.Announcement) (uuid.UUID, error) {
	return uuid.New(), s.err
}
func (s *stubStores) CreateEvent(ctx context.Context, e model.CalendarEvent) (uuid.UUID, error) {
	return uuid.New(), s.err
}
func (s *stubStores) CreateDiaryEntry(ctx context.Context, d model.DiaryEntry) (uuid.UUID, error) {
	return uuid.New(), s.err
}

func newViewServiceForTest(stores *stubStores, store *cache.Store) *ViewService {
	svc := NewViewService(stores, stores, stores, store, 30, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestChildRowsEnrichesAndFilters(t *testing.T) {
	childID := uuid.New()
	end := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	stores := &stubStores{
		children: []model.Child{
			{ID: childID, FirstName: "Mia", LastName: "Huber"},
			{ID: uuid.New(), FirstName: "Tom", LastName: "Berg"},
		},
		contracts: []model.Contract{
			{ChildID: childID, Status: model.ContractStatusActive, EndDate: &end},
		},
	}
	svc := newViewServiceForTest(stores, cache.New())

	rows, err := svc.ChildRows(context.Background(), view.ChildFilter{Exit: view.ExitFilterExiting}, view.Sort{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mia", rows[0].ChildFirstName)
	assert.True(t, rows[0].ExitingSoon)
}

func TestChildRowsUsesCache(t *testing.T) {
	stores := &stubStores{children: []model.Child{{ID: uuid.New()}}}
	svc := newViewServiceForTest(stores, cache.New())

	_, err := svc.ChildRows(context.Background(), view.ChildFilter{}, view.Sort{})
	require.NoError(t, err)
	_, err = svc.ChildRows(context.Background(), view.ChildFilter{}, view.Sort{})
	require.NoError(t, err)

	assert.Equal(t, 1, stores.listChildrenCalls)
}

func TestChildRowsFetchErrorIsWrapped(t *testing.T) {
	stores := &stubStores{err: errors.New("connection refused")}
	svc := newViewServiceForTest(stores, cache.New())

	_, err := svc.ChildRows(context.Background(), view.ChildFilter{}, view.Sort{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch children")
}

func TestGuardianNotFound(t *testing.T) {
	svc := newViewServiceForTest(&stubStores{}, cache.New())

	_, err := svc.Guardian(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingsCacheKeyedByRange(t *testing.T) {
	stores := &stubStores{bookings: []model.ChildBooking{{ID: uuid.New()}}}
	svc := newViewServiceForTest(stores, cache.New())

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	rngA := repository.DateRange{From: &from, To: &to}

	_, err := svc.Bookings(context.Background(), rngA)
	require.NoError(t, err)
	_, err = svc.Bookings(context.Background(), rngA)
	require.NoError(t, err)
	assert.Equal(t, 1, stores.listBookingsCalls)

	later := to.AddDate(0, 1, 0)
	_, err = svc.Bookings(context.Background(), repository.DateRange{From: &from, To: &later})
	require.NoError(t, err)
	assert.Equal(t, 2, stores.listBookingsCalls)
}

func TestOccupancyPlanBucketsByGroup(t *testing.T) {
	groupID := uuid.New()
	stores := &stubStores{
		groups: []model.Group{{ID: groupID, Name: "Sonnenkäfer"}},
		bookings: []model.ChildBooking{
			{ID: uuid.New(), GroupID: &groupID},
			{ID: uuid.New()},
		},
	}
	svc := newViewServiceForTest(stores, cache.New())

	plan, err := svc.OccupancyPlan(context.Background(), repository.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, 2, plan.Total)
	require.Len(t, plan.Groups, 2)
	assert.Equal(t, "Sonnenkäfer", plan.Groups[0].Name)
	assert.Len(t, plan.Groups[1].Bookings, 1)
}
