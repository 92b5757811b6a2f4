package view

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	DirectionNone Direction = ""
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Sort is the single-column sort state of a table.
type Sort struct {
	Column    string
	Direction Direction
}

// Next advances the sort state for a click on column: the same column cycles
// asc → desc → none, a different column resets to asc.
func (s Sort) Next(column string) Sort {
	if s.Column == column {
		switch s.Direction {
		case DirectionAsc:
			return Sort{Column: column, Direction: DirectionDesc}
		case DirectionDesc:
			return Sort{}
		}
	}
	return Sort{Column: column, Direction: DirectionAsc}
}

// SortChildRows returns a sorted copy. Direction none keeps insertion order.
// Comparison is locale-aware (German collation, diacritics-sensitive) on the
// stringified column value; missing fields compare as the empty string.
func SortChildRows(rows []ChildRow, s Sort) []ChildRow {
	out := append([]ChildRow(nil), rows...)
	if s.Column == "" || s.Direction == DirectionNone {
		return out
	}
	coll := collate.New(language.German)
	sort.SliceStable(out, func(i, j int) bool {
		a := childSortValue(out[i], s.Column)
		b := childSortValue(out[j], s.Column)
		if s.Direction == DirectionDesc {
			return coll.CompareString(b, a) < 0
		}
		return coll.CompareString(a, b) < 0
	})
	return out
}

func childSortValue(row ChildRow, column string) string {
	switch column {
	case "guardian_last_name":
		return row.GuardianLastName
	case "guardian_first_name":
		return row.GuardianFirstName
	case "child_first_name":
		return row.ChildFirstName
	case "child_last_name":
		return row.ChildLastName
	case "birth_date":
		return row.BirthDate.Format("2006-01-02")
	case "street":
		return row.Street
	case "address_extra":
		return row.AddressExtra
	case "zip":
		return row.Zip
	case "city":
		return row.City
	case "phone":
		return row.Phone
	case "phone_secondary":
		return row.PhoneSecondary
	case "phone_work":
		return row.PhoneWork
	case "email":
		return row.Email
	case "group":
		return row.GroupName
	case "contract_status":
		return row.ContractStatus
	case "contract_end":
		if row.ContractEnd == nil {
			return ""
		}
		return row.ContractEnd.Format("2006-01-02")
	default:
		return ""
	}
}
