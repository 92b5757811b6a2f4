package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kitaconnect/kita-admin/internal/cache"
	"github.com/kitaconnect/kita-admin/internal/model"
)

// AdminService owns the write paths. Every successful write invalidates the
// cached queries of the touched entity so the next view rebuild sees it.
type AdminService struct {
	registry RegistryStore
	schedule ScheduleStore
	board    BoardStore
	cache    *cache.Store
	log      zerolog.Logger
}

func NewAdminService(registry RegistryStore, schedule ScheduleStore, board BoardStore, store *cache.Store, log zerolog.Logger) *AdminService {
	return &AdminService{
		registry: registry,
		schedule: schedule,
		board:    board,
		cache:    store,
		log:      log,
	}
}

func (s *AdminService) CreateGuardian(ctx context.Context, principal model.Principal, guardian model.Guardian) (uuid.UUID, error) {
	if err := requireManage(principal); err != nil {
		return uuid.Nil, err
	}
	if err := validateGuardian(guardian); err != nil {
		return uuid.Nil, err
	}
	id, err := s.registry.CreateGuardian(ctx, guardian)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create guardian: %w", err)
	}
	s.invalidate(entityGuardians)
	s.log.Info().Str("guardian_id", id.String()).Msg("guardian created")
	return id, nil
}

func (s *AdminService) UpdateGuardian(ctx context.Context, principal model.Principal, guardian model.Guardian) error {
	if err := requireManage(principal); err != nil {
		return err
	}
	if guardian.ID == uuid.Nil {
		return fmt.Errorf("%w: guardian id is required", ErrInvalidInput)
	}
	if err := validateGuardian(guardian); err != nil {
		return err
	}
	if err := s.registry.UpdateGuardian(ctx, guardian); err != nil {
		return fmt.Errorf("update guardian: %w", err)
	}
	s.invalidate(entityGuardians)
	// Guardian fields are joined into the children view as well.
	s.invalidate(entityChildren)
	return nil
}

func (s *AdminService) CreateChild(ctx context.Context, principal model.Principal, child model.Child) (uuid.UUID, error) {
	if err := requireManage(principal); err != nil {
		return uuid.Nil, err
	}
	if err := validateChild(child); err != nil {
		return uuid.Nil, err
	}
	id, err := s.registry.CreateChild(ctx, child)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create child: %w", err)
	}
	s.invalidate(entityChildren)
	s.log.Info().Str("child_id", id.String()).Msg("child created")
	return id, nil
}

func (s *AdminService) UpdateChild(ctx context.Context, principal model.Principal, child model.Child) error {
	if err := requireManage(principal); err != nil {
		return err
	}
	if child.ID == uuid.Nil {
		return fmt.Errorf("%w: child id is required", ErrInvalidInput)
	}
	if err := validateChild(child); err != nil {
		return err
	}
	if err := s.registry.UpdateChild(ctx, child); err != nil {
		return fmt.Errorf("update child: %w", err)
	}
	s.invalidate(entityChildren)
	return nil
}

func (s *AdminService) CreateContract(ctx context.Context, principal model.Principal, contract model.Contract) (uuid.UUID, error) {
	if err := requireManage(principal); err != nil {
		return uuid.Nil, err
	}
	if err := validateContract(contract); err != nil {
		return uuid.Nil, err
	}
	id, err := s.registry.CreateContract(ctx, contract)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create contract: %w", err)
	}
	s.invalidateContracts()
	s.log.Info().Str("contract_id", id.String()).Msg("contract created")
	return id, nil
}

func (s *AdminService) UpdateContract(ctx context.Context, principal model.Principal, contract model.Contract) error {
	if err := requireManage(principal); err != nil {
		return err
	}
	if contract.ID == uuid.Nil {
		return fmt.Errorf("%w: contract id is required", ErrInvalidInput)
	}
	if err := validateContract(contract); err != nil {
		return err
	}
	if err := s.registry.UpdateContract(ctx, contract); err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	s.invalidateContracts()
	return nil
}

func (s *AdminService) CreateBooking(ctx context.Context, principal model.Principal, booking model.ChildBooking) (uuid.UUID, error) {
	if err := requireManage(principal); err != nil {
		return uuid.Nil, err
	}
	if booking.ChildID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: child id is required", ErrInvalidInput)
	}
	if booking.Date.IsZero() {
		return uuid.Nil, fmt.Errorf("%w: booking date is required", ErrInvalidInput)
	}
	if booking.StartTime == "" || booking.EndTime == "" {
		return uuid.Nil, fmt.Errorf("%w: start and end time are required", ErrInvalidInput)
	}
	id, err := s.schedule.CreateBooking(ctx, booking)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create booking: %w", err)
	}
	s.invalidate(entityBookings)
	return id, nil
}

func (s *AdminService) CreateStaff(ctx context.Context, principal model.Principal, staff model.Staff) (uuid.UUID, error) {
	if err := requireManage(principal); err != nil {
		return uuid.Nil, err
	}
	if strings.TrimSpace(staff.FirstName) == "" || strings.TrimSpace(staff.LastName) == "" {
		return uuid.Nil, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	id, err := s.schedule.CreateStaff(ctx, staff)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create staff: %w", err)
	}
	s.invalidate(entityStaff)
	return id, nil
}

func (s *AdminService) CreateShift(ctx context.Context, principal model.Principal, shift model.StaffShift) (uuid.UUID, error) {
	if err := requireManage(principal); err != nil {
		return uuid.Nil, err
	}
	if shift.StaffID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: staff id is required", ErrInvalidInput)
	}
	if shift.Date.IsZero() {
		return uuid.Nil, fmt.Errorf("%w: shift date is required", ErrInvalidInput)
	}
	if !validShiftType(shift.ShiftType) {
		return uuid.Nil, fmt.Errorf("%w: unknown shift type %q", ErrInvalidInput, shift.ShiftType)
	}
	id, err := s.schedule.CreateShift(ctx, shift)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create shift: %w", err)
	}
	s.invalidate(entityShifts)
	return id, nil
}

func (s *AdminService) CreateLeave(ctx context.Context, principal model.Principal, leave model.StaffLeave) (uuid.UUID, error) {
	if err := requireManage(principal); err != nil {
		return uuid.Nil, err
	}
	if leave.StaffID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: staff id is required", ErrInvalidInput)
	}
	if !validLeaveType(leave.LeaveType) {
		return uuid.Nil, fmt.Errorf("%w: unknown leave type %q", ErrInvalidInput, leave.LeaveType)
	}
	if leave.EndDate.Before(leave.StartDate) {
		return uuid.Nil, fmt.Errorf("%w: leave ends before it starts", ErrInvalidInput)
	}
	if leave.Approved && leave.ApprovedBy == nil {
		operator := principal.UserID
		leave.ApprovedBy = &operator
	}
	id, err := s.schedule.CreateLeave(ctx, leave)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create leave: %w", err)
	}
	s.invalidate(entityLeave)
	return id, nil
}

// CreateAbsence is open to every authenticated role, parents report their
// own children sick.
func (s *AdminService) CreateAbsence(ctx context.Context, principal model.Principal, absence model.Absence) (uuid.UUID, error) {
	if absence.ChildID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: child id is required", ErrInvalidInput)
	}
	if !validAbsenceType(absence.Type) {
		return uuid.Nil, fmt.Errorf("%w: unknown absence type %q", ErrInvalidInput, absence.Type)
	}
	if absence.EndDate.Before(absence.StartDate) {
		return uuid.Nil, fmt.Errorf("%w: absence ends before it starts", ErrInvalidInput)
	}
	if absence.ReportedBy == nil && principal.UserID != uuid.Nil {
		operator := principal.UserID
		absence.ReportedBy = &operator
	}
	id, err := s.schedule.CreateAbsence(ctx, absence)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create absence: %w", err)
	}
	s.invalidate(entityAbsences)
	return id, nil
}

func (s *AdminService) CreateAnnouncement(ctx context.Context, principal model.Principal, a model.Announcement) (uuid.UUID, error) {
	if err := requireManage(principal); err != nil {
		return uuid.Nil, err
	}
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Content) == "" {
		return uuid.Nil, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}
	id, err := s.board.CreateAnnouncement(ctx, a)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create announcement: %w", err)
	}
	s.invalidate(entityAnnouncements)
	return id, nil
}

func (s *AdminService) CreateEvent(ctx context.Context, principal model.Principal, e model.CalendarEvent) (uuid.UUID, error) {
	if err := requireManage(principal); err != nil {
		return uuid.Nil, err
	}
	if strings.TrimSpace(e.Title) == "" {
		return uuid.Nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if e.StartDate.IsZero() {
		return uuid.Nil, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}
	if !validEventType(e.Type) {
		return uuid.Nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, e.Type)
	}
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return uuid.Nil, fmt.Errorf("%w: event ends before it starts", ErrInvalidInput)
	}
	id, err := s.board.CreateEvent(ctx, e)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create event: %w", err)
	}
	s.invalidate(entityEvents)
	return id, nil
}

func (s *AdminService) CreateDiaryEntry(ctx context.Context, principal model.Principal, d model.DiaryEntry) (uuid.UUID, error) {
	if !principal.CanManage() && !principal.IsEducator() {
		return uuid.Nil, fmt.Errorf("%w: role %s cannot write diary entries", ErrPermissionDenied, principal.Role)
	}
	if d.GroupID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(d.Content) == "" {
		return uuid.Nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	id, err := s.board.CreateDiaryEntry(ctx, d)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create diary entry: %w", err)
	}
	s.invalidate(entityDiary)
	return id, nil
}

func (s *AdminService) invalidate(entity string) {
	s.cache.Invalidate(entity)
}

// Contract changes feed both the Verträge tab and the derived exit fields of
// the children view.
func (s *AdminService) invalidateContracts() {
	s.cache.Invalidate(entityContracts)
	s.cache.Invalidate(entityChildren)
}

func requireManage(principal model.Principal) error {
	if !principal.CanManage() {
		return fmt.Errorf("%w: role %s cannot manage records", ErrPermissionDenied, principal.Role)
	}
	return nil
}

func validateGuardian(guardian model.Guardian) error {
	if strings.TrimSpace(guardian.FirstName) == "" || strings.TrimSpace(guardian.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	return nil
}

func validateChild(child model.Child) error {
	if strings.TrimSpace(child.FirstName) == "" || strings.TrimSpace(child.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if child.BirthDate.IsZero() {
		return fmt.Errorf("%w: birth date is required", ErrInvalidInput)
	}
	return nil
}

func validateContract(contract model.Contract) error {
	if contract.ChildID == uuid.Nil || contract.GuardianID == uuid.Nil {
		return fmt.Errorf("%w: child and guardian ids are required", ErrInvalidInput)
	}
	if !validContractStatus(contract.Status) {
		return fmt.Errorf("%w: unknown contract status %q", ErrInvalidInput, contract.Status)
	}
	if !validContractType(contract.ContractType) {
		return fmt.Errorf("%w: unknown contract type %q", ErrInvalidInput, contract.ContractType)
	}
	if contract.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}
	if contract.EndDate != nil && contract.EndDate.Before(contract.StartDate) {
		return fmt.Errorf("%w: contract ends before it starts", ErrInvalidInput)
	}
	return nil
}

func validContractStatus(status model.ContractStatus) bool {
	switch status {
	case model.ContractStatusActive, model.ContractStatusPending, model.ContractStatusTerminated, model.ContractStatusExpired:
		return true
	}
	return false
}

func validContractType(kind model.ContractType) bool {
	switch kind {
	case model.ContractTypeFlexible, model.ContractTypeHalfDay, model.ContractTypeFullDay, model.ContractTypeHourly:
		return true
	}
	return false
}

func validShiftType(kind model.ShiftType) bool {
	switch kind {
	case model.ShiftTypeMorning, model.ShiftTypeAfternoon, model.ShiftTypeFullDay, model.ShiftTypeCustom:
		return true
	}
	return false
}

func validLeaveType(kind model.LeaveType) bool {
	switch kind {
	case model.LeaveTypeVacation, model.LeaveTypeSick, model.LeaveTypeTraining, model.LeaveTypeOther:
		return true
	}
	return false
}

func validAbsenceType(kind model.AbsenceType) bool {
	switch kind {
	case model.AbsenceTypeSick, model.AbsenceTypeVacation, model.AbsenceTypeLate, model.AbsenceTypeEarlyPickup, model.AbsenceTypeOther:
		return true
	}
	return false
}

func validEventType(kind model.EventType) bool {
	switch kind {
	case model.EventTypeEvent, model.EventTypeClosure, model.EventTypeMeeting, model.EventTypeReminder:
		return true
	}
	return false
}
