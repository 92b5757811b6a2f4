package view

import (
	"strings"
	"time"

	"github.com/kitaconnect/kita-admin/internal/model"
)

type ExitFilter string

const (
	ExitFilterAll     ExitFilter = "all"
	ExitFilterActive  ExitFilter = "active"
	ExitFilterExiting ExitFilter = "exiting"
)

// ChildFilter holds one predicate per column. String fields are
// case-insensitive substring matches where the empty string matches
// everything; Group is "all"/"" or an exact group id; Exit is the composite
// exit-status filter.
type ChildFilter struct {
	GuardianLastName  string
	GuardianFirstName string
	ChildFirstName    string
	AddressExtra      string
	BirthDate         string
	Street            string
	Zip               string
	City              string
	Phone             string
	PhoneSecondary    string
	PhoneWork         string
	Email             string
	Group             string
	Exit              ExitFilter
}

// FilterChildRows returns the rows matching every column predicate. It never
// fails: filter text that cannot match anything (e.g. malformed date input)
// simply yields no matches for that column.
func FilterChildRows(rows []ChildRow, f ChildFilter) []ChildRow {
	out := make([]ChildRow, 0, len(rows))
	for _, row := range rows {
		if matchesChild(row, f) {
			out = append(out, row)
		}
	}
	return out
}

func matchesChild(row ChildRow, f ChildFilter) bool {
	if !containsFold(row.GuardianLastName, f.GuardianLastName) ||
		!containsFold(row.GuardianFirstName, f.GuardianFirstName) ||
		!containsFold(row.ChildFirstName, f.ChildFirstName) ||
		!containsFold(row.AddressExtra, f.AddressExtra) ||
		!containsFold(row.Street, f.Street) ||
		!containsFold(row.City, f.City) ||
		!containsFold(row.Email, f.Email) {
		return false
	}
	if !strings.Contains(row.Zip, f.Zip) ||
		!strings.Contains(row.Phone, f.Phone) ||
		!strings.Contains(row.PhoneSecondary, f.PhoneSecondary) ||
		!strings.Contains(row.PhoneWork, f.PhoneWork) {
		return false
	}
	if f.BirthDate != "" && !strings.Contains(formatDate(row.BirthDate), f.BirthDate) {
		return false
	}
	if f.Group != "" && f.Group != "all" {
		if row.GroupID == nil || row.GroupID.String() != f.Group {
			return false
		}
	}
	switch f.Exit {
	case ExitFilterExiting:
		return row.ExitingSoon
	case ExitFilterActive:
		// Deliberately not the complement of "exiting": a pending or
		// terminated contract matches neither value, only "all".
		return !row.ExitingSoon && row.ContractStatus == string(model.ContractStatusActive)
	default:
		return true
	}
}

// GuardianFilter is the free-text search over the Eltern tab.
type GuardianFilter struct {
	Query string
}

func FilterGuardians(guardians []model.Guardian, f GuardianFilter) []model.Guardian {
	if f.Query == "" {
		return append([]model.Guardian(nil), guardians...)
	}
	out := make([]model.Guardian, 0, len(guardians))
	for _, g := range guardians {
		name := g.FirstName + " " + g.LastName
		if containsFold(name, f.Query) ||
			containsFold(deref(g.Email), f.Query) ||
			strings.Contains(deref(g.Phone), f.Query) {
			out = append(out, g)
		}
	}
	return out
}

// ContractFilter combines the free-text search with the status select.
type ContractFilter struct {
	Query  string
	Status string
}

func FilterContractRows(rows []ContractRow, f ContractFilter) []ContractRow {
	out := make([]ContractRow, 0, len(rows))
	for _, row := range rows {
		if f.Status != "" && f.Status != "all" && row.Status != f.Status {
			continue
		}
		if f.Query != "" &&
			!containsFold(row.ContractNumber, f.Query) &&
			!containsFold(row.ChildName, f.Query) &&
			!containsFold(row.GuardianName, f.Query) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}
