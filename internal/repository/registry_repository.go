package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitaconnect/kita-admin/internal/model"
)

// RegistryRepository fetches the Verwaltung collections: children, guardians,
// contracts and groups. Relational expansion happens in SQL; an empty result
// is a valid, non-error outcome.
type RegistryRepository struct {
	db *gorm.DB
}

func NewRegistryRepository(db *gorm.DB) *RegistryRepository {
	return &RegistryRepository{db: db}
}

func (r *RegistryRepository) ListGuardians(ctx context.Context) ([]model.Guardian, error) {
	var guardians []model.Guardian
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			first_name,
			last_name,
			email,
			phone,
			phone_secondary,
			address_street,
			address_zip,
			address_city,
			notes,
			created_at,
			updated_at
		FROM guardians
		ORDER BY last_name ASC, first_name ASC
	`).Scan(&guardians).Error
	if err != nil {
		return nil, err
	}
	return guardians, nil
}

func (r *RegistryRepository) GetGuardian(ctx context.Context, id uuid.UUID) (*model.Guardian, error) {
	var guardian model.Guardian
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			first_name,
			last_name,
			email,
			phone,
			phone_secondary,
			address_street,
			address_zip,
			address_city,
			notes,
			created_at,
			updated_at
		FROM guardians
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&guardian).Error
	if err != nil {
		return nil, err
	}
	if guardian.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &guardian, nil
}

func (r *RegistryRepository) ListChildren(ctx context.Context) ([]model.Child, error) {
	var rows []struct {
		ID                uuid.UUID
		FirstName         string
		LastName          string
		BirthDate         time.Time
		GroupID           *uuid.UUID
		PrimaryGuardianID *uuid.UUID
		PhotoPermission   bool
		AllergyList       *string
		AvatarURL         *string
		CreatedAt         time.Time
		UpdatedAt         time.Time
		GroupName         *string
		GroupColor        *string
		GuardianFirstName *string
		GuardianLastName  *string
		GuardianEmail     *string
		GuardianPhone     *string
		GuardianPhone2    *string
		GuardianStreet    *string
		GuardianZip       *string
		GuardianCity      *string
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.first_name,
			c.last_name,
			c.birth_date,
			c.group_id,
			c.primary_guardian_id,
			c.photo_permission,
			array_to_string(c.allergies, ',') AS allergy_list,
			c.avatar_url,
			c.created_at,
			c.updated_at,
			g.name AS group_name,
			g.color AS group_color,
			pg.first_name AS guardian_first_name,
			pg.last_name AS guardian_last_name,
			pg.email AS guardian_email,
			pg.phone AS guardian_phone,
			pg.phone_secondary AS guardian_phone2,
			pg.address_street AS guardian_street,
			pg.address_zip AS guardian_zip,
			pg.address_city AS guardian_city
		FROM children c
		LEFT JOIN groups g ON g.id = c.group_id
		LEFT JOIN guardians pg ON pg.id = c.primary_guardian_id
		ORDER BY c.last_name ASC, c.first_name ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	children := make([]model.Child, 0, len(rows))
	for _, row := range rows {
		child := model.Child{
			ID:                row.ID,
			FirstName:         row.FirstName,
			LastName:          row.LastName,
			BirthDate:         row.BirthDate,
			GroupID:           row.GroupID,
			PrimaryGuardianID: row.PrimaryGuardianID,
			PhotoPermission:   row.PhotoPermission,
			Allergies:         splitList(row.AllergyList),
			AvatarURL:         row.AvatarURL,
			CreatedAt:         row.CreatedAt,
			UpdatedAt:         row.UpdatedAt,
		}
		if row.GroupID != nil && row.GroupName != nil {
			child.Group = &model.Group{
				ID:    *row.GroupID,
				Name:  *row.GroupName,
				Color: strValue(row.GroupColor),
			}
		}
		if row.PrimaryGuardianID != nil && row.GuardianLastName != nil {
			child.PrimaryGuardian = &model.Guardian{
				ID:             *row.PrimaryGuardianID,
				FirstName:      strValue(row.GuardianFirstName),
				LastName:       *row.GuardianLastName,
				Email:          row.GuardianEmail,
				Phone:          row.GuardianPhone,
				PhoneSecondary: row.GuardianPhone2,
				AddressStreet:  row.GuardianStreet,
				AddressZip:     row.GuardianZip,
				AddressCity:    row.GuardianCity,
			}
		}
		children = append(children, child)
	}
	return children, nil
}

func (r *RegistryRepository) ListContracts(ctx context.Context) ([]model.Contract, error) {
	var rows []struct {
		ID                uuid.UUID
		ContractNumber    *string
		ChildID           uuid.UUID
		GuardianID        uuid.UUID
		ContractType      string
		Status            string
		StartDate         time.Time
		EndDate           *time.Time
		MonthlyFee        *float64
		MealFee           *float64
		SubsidyAmount     *float64
		DiscountPercent   *float64
		AdditionalFees    *float64
		Notes             *string
		CreatedAt         time.Time
		UpdatedAt         time.Time
		ChildFirstName    *string
		ChildLastName     *string
		GuardianFirstName *string
		GuardianLastName  *string
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			ct.id,
			ct.contract_number,
			ct.child_id,
			ct.guardian_id,
			ct.contract_type,
			ct.status,
			ct.start_date,
			ct.end_date,
			ct.monthly_fee,
			ct.meal_fee,
			ct.subsidy_amount,
			ct.discount_percent,
			ct.additional_fees,
			ct.notes,
			ct.created_at,
			ct.updated_at,
			c.first_name AS child_first_name,
			c.last_name AS child_last_name,
			g.first_name AS guardian_first_name,
			g.last_name AS guardian_last_name
		FROM contracts ct
		LEFT JOIN children c ON c.id = ct.child_id
		LEFT JOIN guardians g ON g.id = ct.guardian_id
		ORDER BY ct.created_at DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	contracts := make([]model.Contract, 0, len(rows))
	for _, row := range rows {
		contract := model.Contract{
			ID:              row.ID,
			ContractNumber:  row.ContractNumber,
			ChildID:         row.ChildID,
			GuardianID:      row.GuardianID,
			ContractType:    model.ContractType(row.ContractType),
			Status:          model.ContractStatus(row.Status),
			StartDate:       row.StartDate,
			EndDate:         row.EndDate,
			MonthlyFee:      row.MonthlyFee,
			MealFee:         row.MealFee,
			SubsidyAmount:   row.SubsidyAmount,
			DiscountPercent: row.DiscountPercent,
			AdditionalFees:  row.AdditionalFees,
			Notes:           row.Notes,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		}
		if row.ChildLastName != nil {
			contract.Child = &model.Child{
				ID:        row.ChildID,
				FirstName: strValue(row.ChildFirstName),
				LastName:  *row.ChildLastName,
			}
		}
		if row.GuardianLastName != nil {
			contract.Guardian = &model.Guardian{
				ID:        row.GuardianID,
				FirstName: strValue(row.GuardianFirstName),
				LastName:  *row.GuardianLastName,
			}
		}
		contracts = append(contracts, contract)
	}
	return contracts, nil
}

func (r *RegistryRepository) ListGroups(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, color, description
		FROM groups
		ORDER BY name ASC
	`).Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *RegistryRepository) CreateGuardian(ctx context.Context, guardian model.Guardian) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO guardians (
			first_name, last_name, email, phone, phone_secondary,
			address_street, address_zip, address_city, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		guardian.FirstName,
		guardian.LastName,
		guardian.Email,
		guardian.Phone,
		guardian.PhoneSecondary,
		guardian.AddressStreet,
		guardian.AddressZip,
		guardian.AddressCity,
		guardian.Notes,
	).Scan(&id).Error
	return id, err
}

func (r *RegistryRepository) UpdateGuardian(ctx context.Context, guardian model.Guardian) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE guardians
		SET
			first_name = ?,
			last_name = ?,
			email = ?,
			phone = ?,
			phone_secondary = ?,
			address_street = ?,
			address_zip = ?,
			address_city = ?,
			notes = ?,
			updated_at = NOW()
		WHERE id = ?
	`,
		guardian.FirstName,
		guardian.LastName,
		guardian.Email,
		guardian.Phone,
		guardian.PhoneSecondary,
		guardian.AddressStreet,
		guardian.AddressZip,
		guardian.AddressCity,
		guardian.Notes,
		guardian.ID,
	).Error
}

func (r *RegistryRepository) CreateChild(ctx context.Context, child model.Child) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO children (
			first_name, last_name, birth_date, group_id, primary_guardian_id,
			photo_permission, allergies, avatar_url
		) VALUES (?, ?, ?, ?, ?, ?, string_to_array(NULLIF(?, ''), ','), ?)
		RETURNING id
	`,
		child.FirstName,
		child.LastName,
		child.BirthDate,
		child.GroupID,
		child.PrimaryGuardianID,
		child.PhotoPermission,
		strings.Join(child.Allergies, ","),
		child.AvatarURL,
	).Scan(&id).Error
	return id, err
}

func (r *RegistryRepository) UpdateChild(ctx context.Context, child model.Child) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE children
		SET
			first_name = ?,
			last_name = ?,
			birth_date = ?,
			group_id = ?,
			primary_guardian_id = ?,
			photo_permission = ?,
			allergies = string_to_array(NULLIF(?, ''), ','),
			avatar_url = ?,
			updated_at = NOW()
		WHERE id = ?
	`,
		child.FirstName,
		child.LastName,
		child.BirthDate,
		child.GroupID,
		child.PrimaryGuardianID,
		child.PhotoPermission,
		strings.Join(child.Allergies, ","),
		child.AvatarURL,
		child.ID,
	).Error
}

func (r *RegistryRepository) CreateContract(ctx context.Context, contract model.Contract) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO contracts (
			contract_number, child_id, guardian_id, contract_type, status,
			start_date, end_date, monthly_fee, meal_fee, subsidy_amount,
			discount_percent, additional_fees, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		contract.ContractNumber,
		contract.ChildID,
		contract.GuardianID,
		contract.ContractType,
		contract.Status,
		contract.StartDate,
		contract.EndDate,
		contract.MonthlyFee,
		contract.MealFee,
		contract.SubsidyAmount,
		contract.DiscountPercent,
		contract.AdditionalFees,
		contract.Notes,
	).Scan(&id).Error
	return id, err
}

func (r *RegistryRepository) UpdateContract(ctx context.Context, contract model.Contract) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE contracts
		SET
			contract_number = ?,
			contract_type = ?,
			status = ?,
			start_date = ?,
			end_date = ?,
			monthly_fee = ?,
			meal_fee = ?,
			subsidy_amount = ?,
			discount_percent = ?,
			additional_fees = ?,
			notes = ?,
			updated_at = NOW()
		WHERE id = ?
	`,
		contract.ContractNumber,
		contract.ContractType,
		contract.Status,
		contract.StartDate,
		contract.EndDate,
		contract.MonthlyFee,
		contract.MealFee,
		contract.SubsidyAmount,
		contract.DiscountPercent,
		contract.AdditionalFees,
		contract.Notes,
		contract.ID,
	).Error
}

func splitList(raw *string) []string {
	if raw == nil || *raw == "" {
		return nil
	}
	parts := strings.Split(*raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
