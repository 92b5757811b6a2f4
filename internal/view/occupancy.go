package view

import (
	"time"

	"github.com/google/uuid"

	"github.com/kitaconnect/kita-admin/internal/model"
)

// OccupancyPlan is the Belegung view over a date range: bookings bucketed by
// group, with bookings outside any group collected last.
type OccupancyPlan struct {
	From   time.Time
	To     time.Time
	Total  int
	Groups []GroupOccupancy
}

type GroupOccupancy struct {
	ID         uuid.UUID
	Name       string
	Color      string
	ExtraCount int
	Bookings   []model.ChildBooking
}

// BuildOccupancyPlan buckets bookings by group, keeping the group listing
// order. Pure; inputs are not mutated.
func BuildOccupancyPlan(bookings []model.ChildBooking, groups []model.Group, from, to time.Time) OccupancyPlan {
	plan := OccupancyPlan{From: from, To: to}

	index := make(map[uuid.UUID]int, len(groups))
	for _, g := range groups {
		plan.Groups = append(plan.Groups, GroupOccupancy{ID: g.ID, Name: g.Name, Color: g.Color})
		index[g.ID] = len(plan.Groups) - 1
	}

	var ungrouped GroupOccupancy
	for _, booking := range bookings {
		plan.Total++
		if booking.GroupID == nil {
			appendBooking(&ungrouped, booking)
			continue
		}
		pos, ok := index[*booking.GroupID]
		if !ok {
			// Group reference without a fetched group record.
			appendBooking(&ungrouped, booking)
			continue
		}
		appendBooking(&plan.Groups[pos], booking)
	}
	if len(ungrouped.Bookings) > 0 {
		plan.Groups = append(plan.Groups, ungrouped)
	}
	return plan
}

func appendBooking(g *GroupOccupancy, booking model.ChildBooking) {
	g.Bookings = append(g.Bookings, booking)
	if booking.IsExtra {
		g.ExtraCount++
	}
}
