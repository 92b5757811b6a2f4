package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitaconnect/kita-admin/internal/model"
)

// ScheduleRepository fetches the time-scoped collections: child bookings,
// staff, shifts, leave and absences. Date bounds are inclusive on both ends.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// DateRange bounds a fetch; a nil side leaves that end open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r *ScheduleRepository) ListBookings(ctx context.Context, rng DateRange) ([]model.ChildBooking, error) {
	var rows []struct {
		ID             uuid.UUID
		ChildID        uuid.UUID
		ContractID     *uuid.UUID
		GroupID        *uuid.UUID
		Date           time.Time
		StartTime      string
		EndTime        string
		IsExtra        bool
		Notes          *string
		CreatedAt      time.Time
		ChildFirstName *string
		ChildLastName  *string
		GroupName      *string
		GroupColor     *string
	}

	query := `
		SELECT
			b.id,
			b.child_id,
			b.contract_id,
			b.group_id,
			b.date,
			b.start_time,
			b.end_time,
			b.is_extra,
			b.notes,
			b.created_at,
			c.first_name AS child_first_name,
			c.last_name AS child_last_name,
			g.name AS group_name,
			g.color AS group_color
		FROM child_bookings b
		LEFT JOIN children c ON c.id = b.child_id
		LEFT JOIN groups g ON g.id = b.group_id
	`
	query, args := applyDateRange(query, "b.date", rng)
	query += " ORDER BY b.date ASC, b.start_time ASC"

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	bookings := make([]model.ChildBooking, 0, len(rows))
	for _, row := range rows {
		booking := model.ChildBooking{
			ID:         row.ID,
			ChildID:    row.ChildID,
			ContractID: row.ContractID,
			GroupID:    row.GroupID,
			Date:       row.Date,
			StartTime:  row.StartTime,
			EndTime:    row.EndTime,
			IsExtra:    row.IsExtra,
			Notes:      row.Notes,
			CreatedAt:  row.CreatedAt,
		}
		if row.ChildLastName != nil {
			booking.Child = &model.Child{
				ID:        row.ChildID,
				FirstName: strValue(row.ChildFirstName),
				LastName:  *row.ChildLastName,
			}
		}
		if row.GroupID != nil && row.GroupName != nil {
			booking.Group = &model.Group{
				ID:    *row.GroupID,
				Name:  *row.GroupName,
				Color: strValue(row.GroupColor),
			}
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (r *ScheduleRepository) ListStaff(ctx context.Context) ([]model.Staff, error) {
	var staff []model.Staff
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			first_name,
			last_name,
			email,
			phone,
			position,
			weekly_hours,
			hourly_rate,
			employment_start,
			employment_end,
			is_active,
			notes,
			created_at,
			updated_at
		FROM staff
		ORDER BY last_name ASC, first_name ASC
	`).Scan(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *ScheduleRepository) ListShifts(ctx context.Context, rng DateRange) ([]model.StaffShift, error) {
	var rows []struct {
		ID             uuid.UUID
		StaffID        uuid.UUID
		GroupID        *uuid.UUID
		Date           time.Time
		StartTime      string
		EndTime        string
		ShiftType      string
		BreakMinutes   int
		Notes          *string
		CreatedAt      time.Time
		StaffFirstName *string
		StaffLastName  *string
		StaffPosition  *string
		GroupName      *string
		GroupColor     *string
	}

	query := `
		SELECT
			s.id,
			s.staff_id,
			s.group_id,
			s.date,
			s.start_time,
			s.end_time,
			s.shift_type,
			s.break_minutes,
			s.notes,
			s.created_at,
			st.first_name AS staff_first_name,
			st.last_name AS staff_last_name,
			st.position AS staff_position,
			g.name AS group_name,
			g.color AS group_color
		FROM staff_shifts s
		LEFT JOIN staff st ON st.id = s.staff_id
		LEFT JOIN groups g ON g.id = s.group_id
	`
	query, args := applyDateRange(query, "s.date", rng)
	query += " ORDER BY s.date ASC, s.start_time ASC"

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	shifts := make([]model.StaffShift, 0, len(rows))
	for _, row := range rows {
		shift := model.StaffShift{
			ID:           row.ID,
			StaffID:      row.StaffID,
			GroupID:      row.GroupID,
			Date:         row.Date,
			StartTime:    row.StartTime,
			EndTime:      row.EndTime,
			ShiftType:    model.ShiftType(row.ShiftType),
			BreakMinutes: row.BreakMinutes,
			Notes:        row.Notes,
			CreatedAt:    row.CreatedAt,
		}
		if row.StaffLastName != nil {
			shift.Staff = &model.Staff{
				ID:        row.StaffID,
				FirstName: strValue(row.StaffFirstName),
				LastName:  *row.StaffLastName,
				Position:  row.StaffPosition,
			}
		}
		if row.GroupID != nil && row.GroupName != nil {
			shift.Group = &model.Group{
				ID:    *row.GroupID,
				Name:  *row.GroupName,
				Color: strValue(row.GroupColor),
			}
		}
		shifts = append(shifts, shift)
	}
	return shifts, nil
}

func (r *ScheduleRepository) ListLeave(ctx context.Context, rng DateRange) ([]model.StaffLeave, error) {
	var rows []struct {
		ID             uuid.UUID
		StaffID        uuid.UUID
		LeaveType      string
		StartDate      time.Time
		EndDate        time.Time
		Approved       bool
		ApprovedBy     *uuid.UUID
		Notes          *string
		CreatedAt      time.Time
		StaffFirstName *string
		StaffLastName  *string
		StaffPosition  *string
	}

	query := `
		SELECT
			l.id,
			l.staff_id,
			l.leave_type,
			l.start_date,
			l.end_date,
			l.approved,
			l.approved_by,
			l.notes,
			l.created_at,
			st.first_name AS staff_first_name,
			st.last_name AS staff_last_name,
			st.position AS staff_position
		FROM staff_leave l
		LEFT JOIN staff st ON st.id = l.staff_id
	`
	query, args := applyDateRange(query, "l.start_date", rng)
	query += " ORDER BY l.start_date ASC"

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	leaves := make([]model.StaffLeave, 0, len(rows))
	for _, row := range rows {
		leave := model.StaffLeave{
			ID:         row.ID,
			StaffID:    row.StaffID,
			LeaveType:  model.LeaveType(row.LeaveType),
			StartDate:  row.StartDate,
			EndDate:    row.EndDate,
			Approved:   row.Approved,
			ApprovedBy: row.ApprovedBy,
			Notes:      row.Notes,
			CreatedAt:  row.CreatedAt,
		}
		if row.StaffLastName != nil {
			leave.Staff = &model.Staff{
				ID:        row.StaffID,
				FirstName: strValue(row.StaffFirstName),
				LastName:  *row.StaffLastName,
				Position:  row.StaffPosition,
			}
		}
		leaves = append(leaves, leave)
	}
	return leaves, nil
}

func (r *ScheduleRepository) ListAbsences(ctx context.Context, rng DateRange) ([]model.Absence, error) {
	var rows []struct {
		ID             uuid.UUID
		ChildID        uuid.UUID
		Type           string
		StartDate      time.Time
		EndDate        time.Time
		Note           *string
		ReportedBy     *uuid.UUID
		CreatedAt      time.Time
		ChildFirstName *string
		ChildLastName  *string
	}

	query := `
		SELECT
			a.id,
			a.child_id,
			a.type,
			a.start_date,
			a.end_date,
			a.note,
			a.reported_by,
			a.created_at,
			c.first_name AS child_first_name,
			c.last_name AS child_last_name
		FROM absences a
		LEFT JOIN children c ON c.id = a.child_id
	`
	query, args := applyDateRange(query, "a.start_date", rng)
	query += " ORDER BY a.start_date ASC"

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	absences := make([]model.Absence, 0, len(rows))
	for _, row := range rows {
		absence := model.Absence{
			ID:         row.ID,
			ChildID:    row.ChildID,
			Type:       model.AbsenceType(row.Type),
			StartDate:  row.StartDate,
			EndDate:    row.EndDate,
			Note:       row.Note,
			ReportedBy: row.ReportedBy,
			CreatedAt:  row.CreatedAt,
		}
		if row.ChildLastName != nil {
			absence.Child = &model.Child{
				ID:        row.ChildID,
				FirstName: strValue(row.ChildFirstName),
				LastName:  *row.ChildLastName,
			}
		}
		absences = append(absences, absence)
	}
	return absences, nil
}

func (r *ScheduleRepository) CreateBooking(ctx context.Context, booking model.ChildBooking) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO child_bookings (
			child_id, contract_id, group_id, date, start_time, end_time, is_extra, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		booking.ChildID,
		booking.ContractID,
		booking.GroupID,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		booking.IsExtra,
		booking.Notes,
	).Scan(&id).Error
	return id, err
}

func (r *ScheduleRepository) CreateStaff(ctx context.Context, staff model.Staff) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO staff (
			first_name, last_name, email, phone, position, weekly_hours,
			hourly_rate, employment_start, employment_end, is_active, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		staff.FirstName,
		staff.LastName,
		staff.Email,
		staff.Phone,
		staff.Position,
		staff.WeeklyHours,
		staff.HourlyRate,
		staff.EmploymentStart,
		staff.EmploymentEnd,
		staff.IsActive,
		staff.Notes,
	).Scan(&id).Error
	return id, err
}

func (r *ScheduleRepository) CreateShift(ctx context.Context, shift model.StaffShift) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO staff_shifts (
			staff_id, group_id, date, start_time, end_time, shift_type, break_minutes, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		shift.StaffID,
		shift.GroupID,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
		shift.ShiftType,
		shift.BreakMinutes,
		shift.Notes,
	).Scan(&id).Error
	return id, err
}

func (r *ScheduleRepository) CreateLeave(ctx context.Context, leave model.StaffLeave) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO staff_leave (
			staff_id, leave_type, start_date, end_date, approved, approved_by, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		leave.StaffID,
		leave.LeaveType,
		leave.StartDate,
		leave.EndDate,
		leave.Approved,
		leave.ApprovedBy,
		leave.Notes,
	).Scan(&id).Error
	return id, err
}

func (r *ScheduleRepository) CreateAbsence(ctx context.Context, absence model.Absence) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO absences (
			child_id, type, start_date, end_date, note, reported_by
		) VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		absence.ChildID,
		absence.Type,
		absence.StartDate,
		absence.EndDate,
		absence.Note,
		absence.ReportedBy,
	).Scan(&id).Error
	return id, err
}

// applyDateRange appends inclusive bounds on column to the base query.
func applyDateRange(query, column string, rng DateRange) (string, []interface{}) {
	var args []interface{}
	clause := " WHERE 1=1"
	if rng.From != nil {
		clause += " AND " + column + " >= ?"
		args = append(args, *rng.From)
	}
	if rng.To != nil {
		clause += " AND " + column + " <= ?"
		args = append(args, *rng.To)
	}
	return query + clause, args
}
