package types

import "github.com/shopspring/decimal"

// Record is a validated row ready to be written. Values returns the writable
// columns keyed by column name; the key column is never included.
type Record interface {
	Entity() Entity
	Values() map[string]any
}

// Donor is a person who gives money.
type Donor struct {
	DonorID     int64  `db:"donor_id" json:"donor_id"`
	FirstName   string `db:"first_name" json:"first_name"`
	LastName    string `db:"last_name" json:"last_name"`
	Email       string `db:"email" json:"email"`
	Phone       string `db:"phone" json:"phone"`
	Address     string `db:"address" json:"address"`
	DateOfBirth string `db:"date_of_birth" json:"date_of_birth"`
}

func (d *Donor) Entity() Entity { return EntityDonor }

func (d *Donor) Values() map[string]any {
	return map[string]any{
		"first_name":    d.FirstName,
		"last_name":     d.LastName,
		"email":         d.Email,
		"phone":         d.Phone,
		"address":       d.Address,
		"date_of_birth": d.DateOfBirth,
	}
}

// Funding priorities accepted for a Beneficiary.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Beneficiary is the organisation a donation supports.
type Beneficiary struct {
	BeneficiaryID   int64  `db:"beneficiary_id" json:"beneficiary_id"`
	Name            string `db:"name" json:"name"`
	Type            string `db:"type" json:"type"`
	Address         string `db:"address" json:"address"`
	SupportDuration string `db:"support_duration" json:"support_duration"`
	FundingPriority string `db:"funding_priority" json:"funding_priority"`
}

func (b *Beneficiary) Entity() Entity { return EntityBeneficiary }

func (b *Beneficiary) Values() map[string]any {
	return map[string]any{
		"name":             b.Name,
		"type":             b.Type,
		"address":          b.Address,
		"support_duration": b.SupportDuration,
		"funding_priority": b.FundingPriority,
	}
}

// Event is a fundraising event. Volunteers belong to exactly one event.
type Event struct {
	EventID         int64           `db:"event_id" json:"event_id"`
	Name            string          `db:"name" json:"name"`
	Date            string          `db:"date" json:"date"`
	Location        string          `db:"location" json:"location"`
	FundraisingGoal decimal.Decimal `db:"fundraising_goal" json:"fundraising_goal"`
	Description     string          `db:"description" json:"description"`
}

func (e *Event) Entity() Entity { return EntityEvent }

func (e *Event) Values() map[string]any {
	return map[string]any{
		"name":             e.Name,
		"date":             e.Date,
		"location":         e.Location,
		"fundraising_goal": e.FundraisingGoal.InexactFloat64(),
		"description":      e.Description,
	}
}

// Business is a company that donates.
type Business struct {
	BusinessID       int64  `db:"business_id" json:"business_id"`
	Name             string `db:"name" json:"name"`
	Email            string `db:"email" json:"email"`
	Phone            string `db:"phone" json:"phone"`
	Address          string `db:"address" json:"address"`
	RegistrationDate string `db:"registration_date" json:"registration_date"`
}

func (b *Business) Entity() Entity { return EntityBusiness }

func (b *Business) Values() map[string]any {
	return map[string]any{
		"name":              b.Name,
		"email":             b.Email,
		"phone":             b.Phone,
		"address":           b.Address,
		"registration_date": b.RegistrationDate,
	}
}

// Volunteer helps at one event.
type Volunteer struct {
	VolunteerID int64  `db:"volunteer_id" json:"volunteer_id"`
	FirstName   string `db:"first_name" json:"first_name"`
	LastName    string `db:"last_name" json:"last_name"`
	Email       string `db:"email" json:"email"`
	Phone       string `db:"phone" json:"phone"`
	Address     string `db:"address" json:"address"`
	DateOfBirth string `db:"date_of_birth" json:"date_of_birth"`
	EventID     int64  `db:"event_id" json:"event_id"`
}

func (v *Volunteer) Entity() Entity { return EntityVolunteer }

func (v *Volunteer) Values() map[string]any {
	return map[string]any{
		"first_name":    v.FirstName,
		"last_name":     v.LastName,
		"email":         v.Email,
		"phone":         v.Phone,
		"address":       v.Address,
		"date_of_birth": v.DateOfBirth,
		"event_id":      v.EventID,
	}
}

// Donation links any combination of sources to one mandatory beneficiary.
// A nil source ID means the donation has no such source.
type Donation struct {
	DonationID    int64           `db:"donation_id" json:"donation_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Date          string          `db:"date" json:"date"`
	Notes         string          `db:"notes" json:"notes"`
	DonorID       *int64          `db:"donor_id" json:"donor_id,omitempty"`
	EventID       *int64          `db:"event_id" json:"event_id,omitempty"`
	BusinessID    *int64          `db:"business_id" json:"business_id,omitempty"`
	VolunteerID   *int64          `db:"volunteer_id" json:"volunteer_id,omitempty"`
	BeneficiaryID int64           `db:"beneficiary_id" json:"beneficiary_id"`
}

func (d *Donation) Entity() Entity { return EntityDonation }

func (d *Donation) Values() map[string]any {
	return map[string]any{
		"amount":         d.Amount.InexactFloat64(),
		"date":           d.Date,
		"notes":          d.Notes,
		"donor_id":       nullableID(d.DonorID),
		"event_id":       nullableID(d.EventID),
		"business_id":    nullableID(d.BusinessID),
		"volunteer_id":   nullableID(d.VolunteerID),
		"beneficiary_id": d.BeneficiaryID,
	}
}

// Sources returns the non-nil source references keyed by entity.
func (d *Donation) Sources() map[Entity]int64 {
	out := make(map[Entity]int64, 4)
	for e, id := range map[Entity]*int64{
		EntityDonor:     d.DonorID,
		EntityEvent:     d.EventID,
		EntityBusiness:  d.BusinessID,
		EntityVolunteer: d.VolunteerID,
	} {
		if id != nil {
			out[e] = *id
		}
	}
	return out
}

// ID returns a pointer to id, for populating optional Donation sources.
func ID(id int64) *int64 {
	return &id
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
