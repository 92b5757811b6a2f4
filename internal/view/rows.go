package view

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kitaconnect/kita-admin/internal/model"
)

// DefaultExitWindowDays is the window for the "exiting soon" flag. Candidate
// for per-deployment configuration, see EXIT_WINDOW_DAYS.
const DefaultExitWindowDays = 30

// ChildRow is the enriched row the Verwaltung table shows for one child:
// guardian contact data joined in, plus the derived contract fields.
type ChildRow struct {
	ID                uuid.UUID  `json:"id"`
	GuardianLastName  string     `json:"guardian_last_name"`
	GuardianFirstName string     `json:"guardian_first_name"`
	ChildFirstName    string     `json:"child_first_name"`
	ChildLastName     string     `json:"child_last_name"`
	BirthDate         time.Time  `json:"birth_date"`
	Street            string     `json:"street"`
	AddressExtra      string     `json:"address_extra"`
	Zip               string     `json:"zip"`
	City              string     `json:"city"`
	Phone             string     `json:"phone"`
	PhoneSecondary    string     `json:"phone_secondary"`
	PhoneWork         string     `json:"phone_work"`
	Email             string     `json:"email"`
	GroupID           *uuid.UUID `json:"group_id"`
	GroupName         string     `json:"group_name"`
	GroupColor        string     `json:"group_color"`
	ContractStatus    string     `json:"contract_status"`
	ContractEnd       *time.Time `json:"contract_end"`
	HasContract       bool       `json:"has_contract"`
	ExitingSoon       bool       `json:"exiting_soon"`
	DaysUntilExit     *int       `json:"days_until_exit"`
}

// ContractRow is the flattened contract record for the Verträge tab.
type ContractRow struct {
	ID             uuid.UUID  `json:"id"`
	ContractNumber string     `json:"contract_number"`
	ChildName      string     `json:"child_name"`
	GuardianName   string     `json:"guardian_name"`
	Status         string     `json:"status"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	MonthlyFee     *float64   `json:"monthly_fee"`
}

// BuildChildRows joins guardians and contracts onto children and computes the
// exit-window fields. Pure: inputs are never mutated. A missing guardian,
// group or contract degrades to empty fields, never an error.
func BuildChildRows(
	children []model.Child,
	guardians []model.Guardian,
	contracts []model.Contract,
	today time.Time,
	windowDays int,
) []ChildRow {
	guardianByID := make(map[uuid.UUID]*model.Guardian, len(guardians))
	for i := range guardians {
		guardianByID[guardians[i].ID] = &guardians[i]
	}
	contractsByChild := make(map[uuid.UUID][]*model.Contract, len(contracts))
	for i := range contracts {
		contractsByChild[contracts[i].ChildID] = append(contractsByChild[contracts[i].ChildID], &contracts[i])
	}

	rows := make([]ChildRow, 0, len(children))
	for i := range children {
		child := &children[i]

		guardian := child.PrimaryGuardian
		if guardian == nil && child.PrimaryGuardianID != nil {
			guardian = guardianByID[*child.PrimaryGuardianID]
		}
		contract := activeContract(contractsByChild[child.ID])

		row := ChildRow{
			ID:             child.ID,
			ChildFirstName: child.FirstName,
			ChildLastName:  child.LastName,
			BirthDate:      child.BirthDate,
			GroupID:        child.GroupID,
		}
		if guardian != nil {
			row.GuardianLastName = guardian.LastName
			row.GuardianFirstName = guardian.FirstName
			row.Street, row.AddressExtra = splitStreet(deref(guardian.AddressStreet))
			row.Zip = deref(guardian.AddressZip)
			row.City = deref(guardian.AddressCity)
			row.Phone = deref(guardian.Phone)
			row.PhoneSecondary = deref(guardian.PhoneSecondary)
			row.Email = deref(guardian.Email)
		}
		if child.Group != nil {
			row.GroupName = child.Group.Name
			row.GroupColor = child.Group.Color
		}
		if contract != nil {
			row.HasContract = true
			row.ContractStatus = string(contract.Status)
			row.ContractEnd = contract.EndDate
			if contract.EndDate != nil {
				days := daysBetween(today, *contract.EndDate)
				row.DaysUntilExit = &days
				row.ExitingSoon = days >= 0 && days <= windowDays
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// BuildContractRows flattens contracts with their expanded child and guardian.
func BuildContractRows(contracts []model.Contract) []ContractRow {
	rows := make([]ContractRow, 0, len(contracts))
	for i := range contracts {
		c := &contracts[i]
		row := ContractRow{
			ID:             c.ID,
			ContractNumber: deref(c.ContractNumber),
			Status:         string(c.Status),
			StartDate:      c.StartDate,
			EndDate:        c.EndDate,
			MonthlyFee:     c.MonthlyFee,
		}
		if c.Child != nil {
			row.ChildName = strings.TrimSpace(c.Child.FirstName + " " + c.Child.LastName)
		}
		if c.Guardian != nil {
			row.GuardianName = strings.TrimSpace(c.Guardian.FirstName + " " + c.Guardian.LastName)
		}
		rows = append(rows, row)
	}
	return rows
}

// activeContract picks the first contract with status active, falling back to
// the first in arrival order. Callers rely on getting some contract whenever
// any exist for the child, even a non-active one.
func activeContract(contracts []*model.Contract) *model.Contract {
	for _, c := range contracts {
		if c.Status == model.ContractStatusActive {
			return c
		}
	}
	if len(contracts) > 0 {
		return contracts[0]
	}
	return nil
}

// daysBetween returns the whole calendar days from a to b, negative when b is
// in the past. Hours are discarded before subtracting.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// splitStreet separates "Musterweg 3, Hinterhaus" into street and extra.
func splitStreet(street string) (string, string) {
	if idx := strings.Index(street, ","); idx >= 0 {
		return strings.TrimSpace(street[:idx]), strings.TrimSpace(street[idx+1:])
	}
	return street, ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
