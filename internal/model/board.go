package model

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a post on the Pinnwand.
type Announcement struct {
	ID          uuid.UUID
	Title       string
	Content     string
	Author      string
	Important   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
}

type EventType string

const (
	EventTypeEvent    EventType = "event"
	EventTypeClosure  EventType = "closure"
	EventTypeMeeting  EventType = "meeting"
	EventTypeReminder EventType = "reminder"
)

type CalendarEvent struct {
	ID          uuid.UUID
	Title       string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
	AllDay      bool
	Type        EventType
	CreatedAt   time.Time
}

type DiaryEntry struct {
	ID        uuid.UUID
	GroupID   uuid.UUID
	Date      time.Time
	Content   string
	Author    string
	Photos    []string
	CreatedAt time.Time

	Group *Group
}
