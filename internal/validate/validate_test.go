package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/donations/pkg/types"
)

func donorFields() types.Fields {
	return types.Fields{
		"first_name":    "john",
		"last_name":     "doe",
		"email":         "j@d.com",
		"phone":         "123",
		"address":       "1 High St",
		"date_of_birth": "1990-01-01",
	}
}

func requireValidationError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValidation), "expected ErrValidation, got %v", err)
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, field, verr.Field)
}

func TestDonor_Normalizes(t *testing.T) {
	d, err := Donor(donorFields())
	require.NoError(t, err)
	assert.Equal(t, "John", d.FirstName)
	assert.Equal(t, "Doe", d.LastName)
	assert.Equal(t, "j@d.com", d.Email)
	assert.Equal(t, "123", d.Phone)
	assert.Equal(t, "1990-01-01", d.DateOfBirth)
}

func TestDonor_NormalizationIsIdempotent(t *testing.T) {
	first, err := Donor(donorFields())
	require.NoError(t, err)

	again := donorFields()
	again["first_name"] = first.FirstName
	again["last_name"] = first.LastName
	second, err := Donor(again)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNameField(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "lowercase is capitalized", raw: "john", want: "John"},
		{name: "each word capitalized", raw: "mary ann", want: "Mary Ann"},
		{name: "uppercase is folded", raw: "JOHN", want: "John"},
		{name: "surrounding space trimmed", raw: "  peter ", want: "Peter"},
		{name: "digits rejected", raw: "john2", wantErr: true},
		{name: "punctuation rejected", raw: "o'brien", wantErr: true},
		{name: "blank rejected", raw: "", wantErr: true},
		{name: "spaces only rejected", raw: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Field(types.EntityDonor, "first_name", tt.raw)
			if tt.wantErr {
				requireValidationError(t, err, "first_name")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmailField(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{raw: "name@example.com"},
		{raw: "a.b@c"},
		{raw: "@."},
		{raw: "name.example.com", wantErr: true},
		{raw: "name@example", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := Field(types.EntityBusiness, "email", tt.raw)
			if tt.wantErr {
				requireValidationError(t, err, "email")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPhoneField(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{raw: "123"},
		{raw: "0044123456789"},
		{raw: "+44123", wantErr: true},
		{raw: "123 456", wantErr: true},
		{raw: "12a", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Field(types.EntityVolunteer, "phone", tt.raw)
			if tt.wantErr {
				requireValidationError(t, err, "phone")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, got)
		})
	}
}

func TestDateField(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{raw: "2025-01-15"},
		{raw: "2024-13-40"},
		{raw: "15-01-2025", wantErr: true},
		{raw: "2025/01/15", wantErr: true},
		{raw: "2025-1-15", wantErr: true},
		{raw: "2025-01-15T00:00", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := Field(types.EntityDonation, "date", tt.raw)
			if tt.wantErr {
				requireValidationError(t, err, "date")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAmountField(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{raw: "100.50"},
		{raw: "0.01"},
		{raw: "5"},
		{raw: "0", wantErr: true},
		{raw: "-5", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "1e308"},
		{raw: "1e400", wantErr: true},
		{raw: "1" + strings.Repeat("0", 400), wantErr: true},
		{raw: "1e-400", wantErr: true},
	}
	for _, tt := range tests {
		name := tt.raw
		if len(name) > 20 {
			name = name[:20] + "..."
		}
		t.Run(name, func(t *testing.T) {
			_, err := Field(types.EntityDonation, "amount", tt.raw)
			if tt.wantErr {
				requireValidationError(t, err, "amount")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDonation(t *testing.T) {
	t.Run("amount stored as parsed", func(t *testing.T) {
		d, err := Donation(types.Fields{
			"amount":         "100.50",
			"date":           "2025-01-01",
			"beneficiary_id": "1",
		})
		require.NoError(t, err)
		assert.True(t, d.Amount.Equal(decimal.RequireFromString("100.50")))
		assert.Equal(t, int64(1), d.BeneficiaryID)
		assert.Nil(t, d.DonorID)
		assert.Nil(t, d.EventID)
		assert.Nil(t, d.BusinessID)
		assert.Nil(t, d.VolunteerID)
	})

	t.Run("any combination of sources", func(t *testing.T) {
		d, err := Donation(types.Fields{
			"amount":         "50",
			"date":           "2025-01-01",
			"donor_id":       "3",
			"business_id":    "7",
			"beneficiary_id": "2",
		})
		require.NoError(t, err)
		require.NotNil(t, d.DonorID)
		require.NotNil(t, d.BusinessID)
		assert.Equal(t, int64(3), *d.DonorID)
		assert.Equal(t, int64(7), *d.BusinessID)
		assert.Nil(t, d.EventID)
		assert.Equal(t, map[types.Entity]int64{types.EntityDonor: 3, types.EntityBusiness: 7}, d.Sources())
	})

	t.Run("beneficiary is mandatory", func(t *testing.T) {
		_, err := Donation(types.Fields{"amount": "50", "date": "2025-01-01"})
		requireValidationError(t, err, "beneficiary_id")
	})

	t.Run("non-numeric source rejected", func(t *testing.T) {
		_, err := Donation(types.Fields{
			"amount":         "50",
			"date":           "2025-01-01",
			"event_id":       "gala",
			"beneficiary_id": "1",
		})
		requireValidationError(t, err, "event_id")
	})

	t.Run("amount checked before date", func(t *testing.T) {
		_, err := Donation(types.Fields{"amount": "0", "date": "bad", "beneficiary_id": "1"})
		requireValidationError(t, err, "amount")
	})
}

func TestBeneficiary_Priority(t *testing.T) {
	base := func(priority string) types.Fields {
		return types.Fields{"name": "animal shelter", "type": "charity", "funding_priority": priority}
	}

	b, err := Beneficiary(base("high"))
	require.NoError(t, err)
	assert.Equal(t, "High", b.FundingPriority)
	assert.Equal(t, "Animal Shelter", b.Name)
	assert.Equal(t, "Charity", b.Type)

	_, err = Beneficiary(base("urgent"))
	requireValidationError(t, err, "funding_priority")
}

func TestEvent(t *testing.T) {
	e, err := Event(types.Fields{
		"name":             "Gala Dinner 2025",
		"date":             "2025-12-15",
		"location":         "Grand Hall",
		"fundraising_goal": "15000",
	})
	require.NoError(t, err)
	assert.Equal(t, "Gala Dinner 2025", e.Name)
	assert.True(t, e.FundraisingGoal.Equal(decimal.NewFromInt(15000)))

	_, err = Event(types.Fields{"name": "Gala", "date": "2025-12-15", "location": "", "fundraising_goal": "1"})
	requireValidationError(t, err, "location")

	_, err = Event(types.Fields{"name": "Gala", "date": "2025-12-15", "location": "Hall", "fundraising_goal": "0"})
	requireValidationError(t, err, "fundraising_goal")

	_, err = Event(types.Fields{"name": "Gala", "date": "2025-12-15", "location": "Hall", "fundraising_goal": "1e400"})
	requireValidationError(t, err, "fundraising_goal")
}

func TestVolunteer_RequiresEvent(t *testing.T) {
	fields := types.Fields{
		"first_name":    "ann",
		"last_name":     "lee",
		"email":         "ann@lee.org",
		"phone":         "555",
		"date_of_birth": "2000-02-02",
	}
	_, err := Volunteer(fields)
	requireValidationError(t, err, "event_id")

	fields["event_id"] = "2"
	v, err := Volunteer(fields)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.EventID)
	assert.Equal(t, "Ann", v.FirstName)
}

func TestID(t *testing.T) {
	n, err := ID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	for _, raw := range []string{"", "abc", "-1", "0", "99999999999999999999"} {
		_, err := ID(raw)
		assert.True(t, errors.Is(err, types.ErrValidation), "raw %q: got %v", raw, err)
	}
}

func TestUnknownEntityAndField(t *testing.T) {
	_, err := Record(types.Entity("payments"), types.Fields{})
	assert.True(t, errors.Is(err, types.ErrUnknownEntity))

	_, err = Field(types.EntityDonor, "nickname", "x")
	assert.True(t, errors.Is(err, types.ErrInvalidData))
}

func TestRules_PromptOrder(t *testing.T) {
	fields, err := Rules(types.EntityDonation)
	require.NoError(t, err)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"amount", "date", "notes", "donor_id", "event_id", "business_id", "volunteer_id", "beneficiary_id"}, names)
	assert.True(t, fields[3].Optional)
	assert.False(t, fields[7].Optional)
}
