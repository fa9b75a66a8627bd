package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Table DDL. Foreign keys are ON DELETE RESTRICT so the engine backs up the
// dependents check; cascades are done explicitly by DeleteCascade.
const (
	createDonor = `CREATE TABLE IF NOT EXISTS donor (
    donor_id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT NOT NULL UNIQUE,
    address TEXT NOT NULL DEFAULT '',
    date_of_birth TEXT NOT NULL
);`

	createBeneficiary = `CREATE TABLE IF NOT EXISTS beneficiary (
    beneficiary_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    support_duration TEXT NOT NULL DEFAULT '',
    funding_priority TEXT NOT NULL CHECK (funding_priority IN ('High', 'Medium', 'Low'))
);`

	createEvent = `CREATE TABLE IF NOT EXISTS event (
    event_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    date TEXT NOT NULL,
    location TEXT NOT NULL,
    fundraising_goal REAL NOT NULL DEFAULT 0 CHECK (fundraising_goal >= 0),
    description TEXT NOT NULL DEFAULT ''
);`

	createBusiness = `CREATE TABLE IF NOT EXISTS business (
    business_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT NOT NULL UNIQUE,
    address TEXT NOT NULL DEFAULT '',
    registration_date TEXT NOT NULL
);`

	createVolunteer = `CREATE TABLE IF NOT EXISTS volunteer (
    volunteer_id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT NOT NULL UNIQUE,
    address TEXT NOT NULL DEFAULT '',
    date_of_birth TEXT NOT NULL,
    event_id INTEGER NOT NULL,
    FOREIGN KEY (event_id) REFERENCES event(event_id) ON DELETE RESTRICT
);`

	createDonation = `CREATE TABLE IF NOT EXISTS donation (
    donation_id INTEGER PRIMARY KEY AUTOINCREMENT,
    amount REAL NOT NULL CHECK (amount > 0),
    date TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    donor_id INTEGER,
    event_id INTEGER,
    business_id INTEGER,
    volunteer_id INTEGER,
    beneficiary_id INTEGER NOT NULL,
    FOREIGN KEY (donor_id) REFERENCES donor(donor_id) ON DELETE RESTRICT,
    FOREIGN KEY (event_id) REFERENCES event(event_id) ON DELETE RESTRICT,
    FOREIGN KEY (business_id) REFERENCES business(business_id) ON DELETE RESTRICT,
    FOREIGN KEY (volunteer_id) REFERENCES volunteer(volunteer_id) ON DELETE RESTRICT,
    FOREIGN KEY (beneficiary_id) REFERENCES beneficiary(beneficiary_id) ON DELETE RESTRICT
);`
)

// Index DDL for dependents lookups.
const (
	idxVolunteerEvent      = `CREATE INDEX IF NOT EXISTS idx_volunteer_event ON volunteer(event_id);`
	idxDonationDonor       = `CREATE INDEX IF NOT EXISTS idx_donation_donor ON donation(donor_id);`
	idxDonationEvent       = `CREATE INDEX IF NOT EXISTS idx_donation_event ON donation(event_id);`
	idxDonationBusiness    = `CREATE INDEX IF NOT EXISTS idx_donation_business ON donation(business_id);`
	idxDonationVolunteer   = `CREATE INDEX IF NOT EXISTS idx_donation_volunteer ON donation(volunteer_id);`
	idxDonationBeneficiary = `CREATE INDEX IF NOT EXISTS idx_donation_beneficiary ON donation(beneficiary_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createDonor,
	createBeneficiary,
	createEvent,
	createBusiness,
	createVolunteer,
	createDonation,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxVolunteerEvent,
	idxDonationDonor,
	idxDonationEvent,
	idxDonationBusiness,
	idxDonationVolunteer,
	idxDonationBeneficiary,
}

// dropDDL lists the DROP statements children first.
var dropDDL = []string{
	`DROP TABLE IF EXISTS donation;`,
	`DROP TABLE IF EXISTS volunteer;`,
	`DROP TABLE IF EXISTS business;`,
	`DROP TABLE IF EXISTS event;`,
	`DROP TABLE IF EXISTS beneficiary;`,
	`DROP TABLE IF EXISTS donor;`,
}

// ResetSchema drops every table and recreates it empty.
func (b *Backend) ResetSchema(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.handle()
	if err != nil {
		return err
	}
	return b.resetSchema(ctx, db)
}

func (b *Backend) resetSchema(ctx context.Context, db *sqlx.DB) error {
	err := b.withTx(ctx, db, "reset schema", func(tx *sqlx.Tx) error {
		for _, ddl := range dropDDL {
			if _, err := tx.ExecContext(ctx, ddl); err != nil {
				return b.storageError(ctx, "drop table", err)
			}
		}
		return b.createTables(ctx, tx)
	})
	if err != nil {
		return err
	}
	b.logger.WithContext(ctx).Debug("schema reset")
	return nil
}

// createSchema creates any missing tables, keeping existing rows.
func (b *Backend) createSchema(ctx context.Context, db *sqlx.DB) error {
	return b.withTx(ctx, db, "create schema", func(tx *sqlx.Tx) error {
		return b.createTables(ctx, tx)
	})
}

func (b *Backend) createTables(ctx context.Context, tx *sqlx.Tx) error {
	for _, ddl := range schemaDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return b.storageError(ctx, "create table", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return b.storageError(ctx, "create index", err)
		}
	}
	return nil
}
