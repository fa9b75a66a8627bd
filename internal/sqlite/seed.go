package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// sampleRecords returns the demonstration rows in insertion order. Keys are
// assigned 1..n per table on a freshly reset schema, so the references
// below are stable.
func sampleRecords() []types.Record {
	return []types.Record{
		&types.Donor{FirstName: "John", LastName: "Doe", Email: "john@example.com", Phone: "123456789", Address: "123 Main St", DateOfBirth: "1980-01-01"},
		&types.Donor{FirstName: "Jane", LastName: "Smith", Email: "jane@another.com", Phone: "987654321", Address: "456 Oak Ave", DateOfBirth: "1992-03-15"},
		&types.Donor{FirstName: "Peter", LastName: "Jones", Email: "peter@third.org", Phone: "1122334455", Address: "789 Pine Rd", DateOfBirth: "1975-11-22"},
		&types.Donor{FirstName: "Susan", LastName: "Davis", Email: "susan@fourth.net", Phone: "9988776655", Address: "333 Lake Rd", DateOfBirth: "1988-06-30"},

		&types.Beneficiary{Name: "Children Foundation", Type: "Charity", Address: "456 Oak Ave", SupportDuration: "5 years", FundingPriority: types.PriorityHigh},
		&types.Beneficiary{Name: "Elderly Support", Type: "Non-Profit", Address: "10 Downing St", SupportDuration: "Ongoing", FundingPriority: types.PriorityMedium},
		&types.Beneficiary{Name: "Animal Shelter", Type: "Charity", Address: "221B Baker St", SupportDuration: "3 years", FundingPriority: types.PriorityHigh},
		&types.Beneficiary{Name: "Environmental Fund", Type: "Charity", Address: "77 Green Way", SupportDuration: "Permanent", FundingPriority: types.PriorityMedium},

		&types.Event{Name: "Gala Dinner", Date: "2025-12-15", Location: "Grand Hall", FundraisingGoal: decimal.NewFromInt(15000), Description: "Annual fundraising event"},
		&types.Event{Name: "Marathon Run", Date: "2025-11-20", Location: "City Park", FundraisingGoal: decimal.NewFromInt(20000), Description: "Charity marathon"},
		&types.Event{Name: "Bake Sale", Date: "2025-10-01", Location: "Town Square", FundraisingGoal: decimal.NewFromInt(1000), Description: "Community bake sale"},
		&types.Event{Name: "Art Auction", Date: "2026-03-10", Location: "Gallery One", FundraisingGoal: decimal.NewFromInt(12000), Description: "Fundraiser for local artists"},

		&types.Business{Name: "TechCorp", Email: "contact@techcorp.com", Phone: "111111111", Address: "123 Silicon Valley", RegistrationDate: "2024-01-01"},
		&types.Business{Name: "GreenEnergy", Email: "info@greenenergy.com", Phone: "222222222", Address: "456 Green Street", RegistrationDate: "2023-06-10"},
		&types.Business{Name: "FoodiesHub", Email: "support@foodieshub.com", Phone: "333333333", Address: "789 Food Plaza", RegistrationDate: "2022-11-15"},
		&types.Business{Name: "EduWorld", Email: "hello@eduworld.com", Phone: "444444444", Address: "101 Learning Blvd", RegistrationDate: "2021-08-20"},

		&types.Volunteer{FirstName: "Alice", LastName: "Brown", Email: "alice@helpers.org", Phone: "555123456", Address: "12 Elm St", DateOfBirth: "1995-04-12", EventID: 1},
		&types.Volunteer{FirstName: "Tom", LastName: "Green", Email: "tom@helpers.org", Phone: "555654321", Address: "34 Birch Ave", DateOfBirth: "1990-09-05", EventID: 2},

		&types.Donation{Amount: decimal.NewFromInt(500), Date: "2025-11-01", Notes: "John donates to Children Foundation", DonorID: types.ID(1), BeneficiaryID: 1},
		&types.Donation{Amount: decimal.NewFromInt(350), Date: "2025-11-03", Notes: "John donates to Elderly Support", DonorID: types.ID(1), BeneficiaryID: 2},
		&types.Donation{Amount: decimal.NewFromInt(200), Date: "2025-11-05", Notes: "Jane donates to Animal Shelter", DonorID: types.ID(2), BeneficiaryID: 3},
		&types.Donation{Amount: decimal.NewFromInt(1000), Date: "2025-12-20", Notes: "Event Gala Dinner for Environmental Fund", EventID: types.ID(1), BeneficiaryID: 4},
		&types.Donation{Amount: decimal.NewFromInt(800), Date: "2025-11-22", Notes: "Event Marathon Run for Elderly Support", EventID: types.ID(2), BeneficiaryID: 2},
		&types.Donation{Amount: decimal.NewFromInt(750), Date: "2025-12-01", Notes: "TechCorp donates to Children Foundation", BusinessID: types.ID(1), BeneficiaryID: 1},
		&types.Donation{Amount: decimal.NewFromInt(600), Date: "2025-11-18", Notes: "GreenEnergy donation to Environmental Fund", BusinessID: types.ID(2), BeneficiaryID: 4},
	}
}

// Seed inserts the sample rows. It expects an empty schema.
func (b *Backend) Seed(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.handle()
	if err != nil {
		return err
	}
	return b.seed(ctx, db)
}

// seed inserts every sample row in one transaction through the same path as
// Insert, so references are checked. The rows bypass the input validators.
func (b *Backend) seed(ctx context.Context, db *sqlx.DB) error {
	records := sampleRecords()
	err := b.withTx(ctx, db, "seed", func(tx *sqlx.Tx) error {
		for _, rec := range records {
			t := tables[rec.Entity()]
			vals, err := t.values(rec)
			if err != nil {
				return err
			}
			if _, err := b.insert(ctx, tx, t, vals); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.logger.WithContext(ctx).Debugf("seeded %d sample rows", len(records))
	return nil
}
