package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitaconnect/kita-admin/internal/cache"
	"github.com/kitaconnect/kita-admin/internal/model"
	"github.com/kitaconnect/kita-admin/internal/view"
)

var (
	manager = model.Principal{UserID: uuid.New(), Role: model.RoleManager}
	parent  = model.Principal{UserID: uuid.New(), Role: model.RoleParent}
)

func newAdminServiceForTest(stores *stubStores, store *cache.Store) *AdminService {
	return NewAdminService(stores, stores, stores, store, zerolog.Nop())
}

func TestCreateGuardianValidation(t *testing.T) {
	svc := newAdminServiceForTest(&stubStores{}, cache.New())

	tests := []struct {
		name     string
		guardian model.Guardian
	}{
		{"missing last name", model.Guardian{FirstName: "Anna"}},
		{"blank first name", model.Guardian{FirstName: "   ", LastName: "Huber"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGuardian(context.Background(), manager, tt.guardian)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateGuardianPermission(t *testing.T) {
	svc := newAdminServiceForTest(&stubStores{}, cache.New())

	_, err := svc.CreateGuardian(context.Background(), parent, model.Guardian{FirstName: "Anna", LastName: "Huber"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdateGuardianRequiresID(t *testing.T) {
	svc := newAdminServiceForTest(&stubStores{}, cache.New())

	err := svc.UpdateGuardian(context.Background(), manager, model.Guardian{FirstName: "Anna", LastName: "Huber"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateContractValidation(t *testing.T) {
	svc := newAdminServiceForTest(&stubStores{}, cache.New())
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	earlier := start.AddDate(0, 0, -1)

	valid := model.Contract{
		ChildID:      uuid.New(),
		GuardianID:   uuid.New(),
		ContractType: model.ContractTypeFullDay,
		Status:       model.ContractStatusActive,
		StartDate:    start,
	}

	_, err := svc.CreateContract(context.Background(), manager, valid)
	require.NoError(t, err)

	broken := valid
	broken.Status = "paused"
	_, err = svc.CreateContract(context.Background(), manager, broken)
	assert.ErrorIs(t, err, ErrInvalidInput)

	broken = valid
	broken.EndDate = &earlier
	_, err = svc.CreateContract(context.Background(), manager, broken)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestContractWriteInvalidatesChildrenView(t *testing.T) {
	store := cache.New()
	stores := &stubStores{children: []model.Child{{ID: uuid.New()}}}
	views := newViewServiceForTest(stores, store)
	admin := newAdminServiceForTest(stores, store)

	_, err := views.ChildRows(context.Background(), view.ChildFilter{}, view.Sort{})
	require.NoError(t, err)
	require.Equal(t, 1, stores.listChildrenCalls)

	_, err = admin.CreateContract(context.Background(), manager, model.Contract{
		ChildID:      uuid.New(),
		GuardianID:   uuid.New(),
		ContractType: model.ContractTypeFlexible,
		Status:       model.ContractStatusPending,
		StartDate:    time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// The exit fields depend on contracts, so the children view refetches.
	_, err = views.ChildRows(context.Background(), view.ChildFilter{}, view.Sort{})
	require.NoError(t, err)
	assert.Equal(t, 2, stores.listChildrenCalls)
}

func TestCreateAbsence(t *testing.T) {
	svc := newAdminServiceForTest(&stubStores{}, cache.New())
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	t.Run("parents may report", func(t *testing.T) {
		_, err := svc.CreateAbsence(context.Background(), parent, model.Absence{
			ChildID:   uuid.New(),
			Type:      model.AbsenceTypeSick,
			StartDate: start,
			EndDate:   start,
		})
		assert.NoError(t, err)
	})

	t.Run("reporter defaults to the principal", func(t *testing.T) {
		stores := &stubStores{}
		svc := newAdminServiceForTest(stores, cache.New())
		_, err := svc.CreateAbsence(context.Background(), parent, model.Absence{
			ChildID:   uuid.New(),
			Type:      model.AbsenceTypeSick,
			StartDate: start,
			EndDate:   start,
		})
		require.NoError(t, err)
		require.NotNil(t, stores.lastAbsence.ReportedBy)
		assert.Equal(t, parent.UserID, *stores.lastAbsence.ReportedBy)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := svc.CreateAbsence(context.Background(), parent, model.Absence{
			ChildID:   uuid.New(),
			Type:      "holiday",
			StartDate: start,
			EndDate:   start,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := svc.CreateAbsence(context.Background(), parent, model.Absence{
			ChildID:   uuid.New(),
			Type:      model.AbsenceTypeVacation,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, -3),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCreateLeaveApprovalStampsOperator(t *testing.T) {
	stores := &stubStores{}
	svc := newAdminServiceForTest(stores, cache.New())
	start := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateLeave(context.Background(), manager, model.StaffLeave{
		StaffID:   uuid.New(),
		LeaveType: model.LeaveTypeVacation,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 14),
		Approved:  true,
	})
	require.NoError(t, err)
	require.NotNil(t, stores.lastLeave.ApprovedBy)
	assert.Equal(t, manager.UserID, *stores.lastLeave.ApprovedBy)
}

func TestCreateDiaryEntryRoles(t *testing.T) {
	svc := newAdminServiceForTest(&stubStores{}, cache.New())
	entry := model.DiaryEntry{
		GroupID: uuid.New(),
		Date:    time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		Content: "Ausflug in den Park",
	}

	educator := model.Principal{UserID: uuid.New(), Role: model.RoleEducator}
	_, err := svc.CreateDiaryEntry(context.Background(), educator, entry)
	assert.NoError(t, err)

	_, err = svc.CreateDiaryEntry(context.Background(), parent, entry)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
