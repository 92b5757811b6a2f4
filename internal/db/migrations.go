package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_status') THEN
			CREATE TYPE contract_status AS ENUM ('active', 'pending', 'terminated', 'expired');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_type') THEN
			CREATE TYPE contract_type AS ENUM ('flexible', 'halbtags', 'ganztags', 'stundenweise');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'absence_type') THEN
			CREATE TYPE absence_type AS ENUM ('sick', 'vacation', 'late', 'early_pickup', 'other');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'event_type') THEN
			CREATE TYPE event_type AS ENUM ('event', 'closure', 'meeting', 'reminder');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'leave_type') THEN
			CREATE TYPE leave_type AS ENUM ('vacation', 'sick', 'training', 'other');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'staff_shift_type') THEN
			CREATE TYPE staff_shift_type AS ENUM ('morning', 'afternoon', 'full_day', 'custom');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS groups (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(120) NOT NULL,
		color VARCHAR(16) NOT NULL DEFAULT '#4A9D8E',
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS guardians (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		first_name VARCHAR(120) NOT NULL,
		last_name VARCHAR(120) NOT NULL,
		email VARCHAR(255),
		phone VARCHAR(40),
		phone_secondary VARCHAR(40),
		address_street TEXT,
		address_zip VARCHAR(12),
		address_city VARCHAR(120),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS children (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		first_name VARCHAR(120) NOT NULL,
		last_name VARCHAR(120) NOT NULL,
		birth_date DATE NOT NULL,
		group_id UUID REFERENCES groups(id),
		primary_guardian_id UUID REFERENCES guardians(id),
		photo_permission BOOLEAN NOT NULL DEFAULT FALSE,
		allergies TEXT[],
		avatar_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_number VARCHAR(64),
		child_id UUID NOT NULL REFERENCES children(id),
		guardian_id UUID NOT NULL REFERENCES guardians(id),
		contract_type contract_type NOT NULL DEFAULT 'flexible',
		status contract_status NOT NULL DEFAULT 'pending',
		start_date DATE NOT NULL,
		end_date DATE,
		monthly_fee NUMERIC(10,2),
		meal_fee NUMERIC(10,2),
		subsidy_amount NUMERIC(10,2),
		discount_percent NUMERIC(5,2),
		additional_fees NUMERIC(10,2),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contract_number ON contracts (contract_number) WHERE contract_number IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_child_id ON contracts (child_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	`CREATE TABLE IF NOT EXISTS child_bookings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		child_id UUID NOT NULL REFERENCES children(id),
		contract_id UUID REFERENCES contracts(id),
		group_id UUID REFERENCES groups(id),
		date DATE NOT NULL,
		start_time VARCHAR(8) NOT NULL,
		end_time VARCHAR(8) NOT NULL,
		is_extra BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_child_bookings_date ON child_bookings (date);`,
	`CREATE TABLE IF NOT EXISTS staff (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		first_name VARCHAR(120) NOT NULL,
		last_name VARCHAR(120) NOT NULL,
		email VARCHAR(255),
		phone VARCHAR(40),
		position VARCHAR(120),
		weekly_hours NUMERIC(5,2),
		hourly_rate NUMERIC(8,2),
		employment_start DATE,
		employment_end DATE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS staff_shifts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		staff_id UUID NOT NULL REFERENCES staff(id),
		group_id UUID REFERENCES groups(id),
		date DATE NOT NULL,
		start_time VARCHAR(8) NOT NULL,
		end_time VARCHAR(8) NOT NULL,
		shift_type staff_shift_type NOT NULL DEFAULT 'custom',
		break_minutes INT NOT NULL DEFAULT 0,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_staff_shifts_date ON staff_shifts (date);`,
	`CREATE TABLE IF NOT EXISTS staff_leave (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		staff_id UUID NOT NULL REFERENCES staff(id),
		leave_type leave_type NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		approved BOOLEAN NOT NULL DEFAULT FALSE,
		approved_by UUID,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS absences (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		child_id UUID NOT NULL REFERENCES children(id),
		type absence_type NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		note TEXT,
		reported_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS announcements (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		content TEXT NOT NULL,
		author VARCHAR(255) NOT NULL,
		important BOOLEAN NOT NULL DEFAULT FALSE,
		published_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS calendar_events (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		description TEXT,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ,
		all_day BOOLEAN NOT NULL DEFAULT FALSE,
		type event_type NOT NULL DEFAULT 'event',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS diary_entries (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		group_id UUID NOT NULL REFERENCES groups(id),
		date DATE NOT NULL DEFAULT CURRENT_DATE,
		content TEXT NOT NULL,
		author VARCHAR(255) NOT NULL,
		photos TEXT[],
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
