package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitaconnect/kita-admin/internal/model"
)

// BoardRepository fetches the Pinnwand, calendar and diary collections.
type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, title, content, author, important, published_at, created_at
		FROM announcements
		ORDER BY created_at DESC
	`).Scan(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *BoardRepository) ListEvents(ctx context.Context, rng DateRange) ([]model.CalendarEvent, error) {
	query := `
		SELECT id, title, description, start_date, end_date, all_day, type, created_at
		FROM calendar_events
	`
	query, args := applyDateRange(query, "start_date", rng)
	query += " ORDER BY start_date ASC"

	var events []model.CalendarEvent
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *BoardRepository) ListDiaryEntries(ctx context.Context, rng DateRange) ([]model.DiaryEntry, error) {
	var rows []struct {
		ID         uuid.UUID
		GroupID    uuid.UUID
		Date       time.Time
		Content    string
		Author     string
		PhotoList  *string
		CreatedAt  time.Time
		GroupName  *string
		GroupColor *string
	}

	query := `
		SELECT
			d.id,
			d.group_id,
			d.date,
			d.content,
			d.author,
			array_to_string(d.photos, ',') AS photo_list,
			d.created_at,
			g.name AS group_name,
			g.color AS group_color
		FROM diary_entries d
		LEFT JOIN groups g ON g.id = d.group_id
	`
	query, args := applyDateRange(query, "d.date", rng)
	query += " ORDER BY d.date DESC"

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]model.DiaryEntry, 0, len(rows))
	for _, row := range rows {
		entry := model.DiaryEntry{
			ID:        row.ID,
			GroupID:   row.GroupID,
			Date:      row.Date,
			Content:   row.Content,
			Author:    row.Author,
			Photos:    splitList(row.PhotoList),
			CreatedAt: row.CreatedAt,
		}
		if row.GroupName != nil {
			entry.Group = &model.Group{
				ID:    row.GroupID,
				Name:  *row.GroupName,
				Color: strValue(row.GroupColor),
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *BoardRepository) CreateAnnouncement(ctx context.Context, a model.Announcement) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO announcements (title, content, author, important, published_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, a.Title, a.Content, a.Author, a.Important, a.PublishedAt).Scan(&id).Error
	return id, err
}

func (r *BoardRepository) CreateEvent(ctx context.Context, e model.CalendarEvent) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO calendar_events (title, description, start_date, end_date, all_day, type)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`, e.Title, e.Description, e.StartDate, e.EndDate, e.AllDay, e.Type).Scan(&id).Error
	return id, err
}

func (r *BoardRepository) CreateDiaryEntry(ctx context.Context, d model.DiaryEntry) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO diary_entries (group_id, date, content, author, photos)
		VALUES (?, ?, ?, ?, string_to_array(NULLIF(?, ''), ','))
		RETURNING id
	`, d.GroupID, d.Date, d.Content, d.Author, strings.Join(d.Photos, ",")).Scan(&id).Error
	return id, err
}
