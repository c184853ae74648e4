package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea tablas, índices y constraints si no existen. Idempotente:
// se ejecuta en cada arranque. La FK circular users<->businesses se agrega al
// final porque ninguna de las dos tablas puede declararla antes de que exista
// la otra.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			business_id UUID,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'owner' CHECK (role IN ('owner', 'admin', 'manager', 'employee')),
			active BOOLEAN NOT NULL DEFAULT true,
			email_verified BOOLEAN NOT NULL DEFAULT false,
			last_login TIMESTAMPTZ,
			reset_token TEXT,
			reset_token_expires TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email))`,
		`CREATE INDEX IF NOT EXISTS users_reset_token_idx ON users (reset_token) WHERE reset_token IS NOT NULL`,
		`CREATE TABLE IF NOT EXISTS businesses (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			industry TEXT NOT NULL DEFAULT 'other' CHECK (industry IN ('retail', 'wholesale', 'manufacturing',
				'services', 'technology', 'agriculture', 'healthcare', 'education', 'hospitality', 'logistics', 'other')),
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			address JSONB NOT NULL DEFAULT '{}'::jsonb,
			currency TEXT NOT NULL DEFAULT 'NGN' CHECK (currency IN ('NGN', 'USD', 'EUR', 'GBP', 'GHS', 'KES', 'ZAR')),
			timezone TEXT NOT NULL DEFAULT 'Africa/Lagos',
			registration_number TEXT,
			tax_id TEXT NOT NULL DEFAULT '',
			logo_url TEXT NOT NULL DEFAULT '',
			employee_count INT NOT NULL DEFAULT 0,
			annual_revenue NUMERIC(15, 2) NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT true,
			subscription_status TEXT NOT NULL DEFAULT 'trial' CHECK (subscription_status IN ('trial', 'active', 'suspended', 'cancelled')),
			subscription_plan TEXT NOT NULL DEFAULT 'free' CHECK (subscription_plan IN ('free', 'starter', 'growth', 'enterprise')),
			preferences JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS businesses_registration_number_idx
			ON businesses (registration_number) WHERE registration_number IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS businesses_owner_idx ON businesses (owner_id)`,
		`DO $$ BEGIN
			ALTER TABLE users ADD CONSTRAINT users_business_id_fkey
				FOREIGN KEY (business_id) REFERENCES businesses(id) ON DELETE SET NULL;
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
