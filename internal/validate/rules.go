package validate

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// FieldRule describes one input field of an entity, in prompt order.
type FieldRule struct {
	Name     string // column name and key in types.Fields
	Label    string // prompt label
	Hint     string // optional tip shown before the prompt
	Optional bool   // blank input is accepted

	tag       string
	normalize func(string) string
}

// values holds normalized field values keyed by column name.
type values map[string]string

type entityRules struct {
	fields []FieldRule
	build  func(v values) (types.Record, error)
}

const (
	nameHint  = "Names should contain only letters."
	emailHint = "Use a valid email format (e.g., name@example.com)."
	phoneHint = "Phone number must be digits only."
	dateHint  = "Use the format YYYY-MM-DD."
	moneyHint = "Enter a positive amount like 100.50."
)

func name(col, label string) FieldRule {
	return FieldRule{Name: col, Label: label, Hint: nameHint, tag: "required,letters", normalize: titleCase}
}

func email(col string) FieldRule {
	return FieldRule{Name: col, Label: "Email", Hint: emailHint, tag: "required,weakemail"}
}

func phone(col string) FieldRule {
	return FieldRule{Name: col, Label: "Phone Number", Hint: phoneHint, tag: "required,digits"}
}

func date(col, label string) FieldRule {
	return FieldRule{Name: col, Label: label + " (YYYY-MM-DD)", Hint: dateHint, tag: "required,isodate"}
}

func text(col, label string) FieldRule {
	return FieldRule{Name: col, Label: label, Optional: true}
}

func required(col, label string) FieldRule {
	return FieldRule{Name: col, Label: label, tag: "required"}
}

func money(col, label string) FieldRule {
	return FieldRule{Name: col, Label: label, Hint: moneyHint, tag: "required,positive"}
}

func ref(col, label string) FieldRule {
	return FieldRule{Name: col, Label: label, tag: "required,digits"}
}

func optionalRef(col, label string) FieldRule {
	return FieldRule{Name: col, Label: label + " (leave blank if none)", Optional: true, tag: "omitempty,digits"}
}

var rules = map[types.Entity]entityRules{
	types.EntityDonor: {
		fields: []FieldRule{
			name("first_name", "First Name"),
			name("last_name", "Last Name"),
			email("email"),
			phone("phone"),
			text("address", "Address"),
			date("date_of_birth", "Date of Birth"),
		},
		build: func(v values) (types.Record, error) {
			return &types.Donor{
				FirstName:   v["first_name"],
				LastName:    v["last_name"],
				Email:       v["email"],
				Phone:       v["phone"],
				Address:     v["address"],
				DateOfBirth: v["date_of_birth"],
			}, nil
		},
	},
	types.EntityBeneficiary: {
		fields: []FieldRule{
			name("name", "Name"),
			{Name: "type", Label: "Type (e.g., Charity)", Hint: "Type should contain only letters.", tag: "required,letters", normalize: titleCase},
			text("address", "Address"),
			text("support_duration", "Support Duration (e.g., 5 years)"),
			{Name: "funding_priority", Label: "Funding Priority (High, Medium, Low)", tag: "required,oneof=High Medium Low", normalize: titleCase},
		},
		build: func(v values) (types.Record, error) {
			return &types.Beneficiary{
				Name:            v["name"],
				Type:            v["type"],
				Address:         v["address"],
				SupportDuration: v["support_duration"],
				FundingPriority: v["funding_priority"],
			}, nil
		},
	},
	types.EntityEvent: {
		fields: []FieldRule{
			required("name", "Event Name"),
			date("date", "Date"),
			required("location", "Location"),
			money("fundraising_goal", "Fundraising Goal"),
			text("description", "Description"),
		},
		build: func(v values) (types.Record, error) {
			goal, err := amount(v, "fundraising_goal")
			if err != nil {
				return nil, err
			}
			return &types.Event{
				Name:            v["name"],
				Date:            v["date"],
				Location:        v["location"],
				FundraisingGoal: goal,
				Description:     v["description"],
			}, nil
		},
	},
	types.EntityBusiness: {
		fields: []FieldRule{
			name("name", "Business Name"),
			email("email"),
			phone("phone"),
			text("address", "Address"),
			date("registration_date", "Registration Date"),
		},
		build: func(v values) (types.Record, error) {
			return &types.Business{
				Name:             v["name"],
				Email:            v["email"],
				Phone:            v["phone"],
				Address:          v["address"],
				RegistrationDate: v["registration_date"],
			}, nil
		},
	},
	types.EntityVolunteer: {
		fields: []FieldRule{
			name("first_name", "First Name"),
			name("last_name", "Last Name"),
			email("email"),
			phone("phone"),
			text("address", "Address"),
			date("date_of_birth", "Date of Birth"),
			ref("event_id", "Event ID"),
		},
		build: func(v values) (types.Record, error) {
			eventID, err := id(v, "event_id")
			if err != nil {
				return nil, err
			}
			return &types.Volunteer{
				FirstName:   v["first_name"],
				LastName:    v["last_name"],
				Email:       v["email"],
				Phone:       v["phone"],
				Address:     v["address"],
				DateOfBirth: v["date_of_birth"],
				EventID:     *eventID,
			}, nil
		},
	},
	types.EntityDonation: {
		fields: []FieldRule{
			money("amount", "Donation Amount"),
			date("date", "Date"),
			text("notes", "Notes (optional)"),
			optionalRef("donor_id", "Donor ID"),
			optionalRef("event_id", "Event ID"),
			optionalRef("business_id", "Business ID"),
			optionalRef("volunteer_id", "Volunteer ID"),
			ref("beneficiary_id", "Beneficiary ID"),
		},
		build: func(v values) (types.Record, error) {
			amt, err := amount(v, "amount")
			if err != nil {
				return nil, err
			}
			d := &types.Donation{Amount: amt, Date: v["date"], Notes: v["notes"]}
			for col, dst := range map[string]**int64{
				"donor_id":     &d.DonorID,
				"event_id":     &d.EventID,
				"business_id":  &d.BusinessID,
				"volunteer_id": &d.VolunteerID,
			} {
				if *dst, err = id(v, col); err != nil {
					return nil, err
				}
			}
			beneficiary, err := id(v, "beneficiary_id")
			if err != nil {
				return nil, err
			}
			d.BeneficiaryID = *beneficiary
			return d, nil
		},
	},
}

// id parses an already validated identifier; blank yields nil.
func id(v values, col string) (*int64, error) {
	s := v[col]
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return nil, &types.ValidationError{Field: col, Value: s, Reason: "is not a valid ID"}
	}
	return &n, nil
}

func amount(v values, col string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v[col])
	if err != nil {
		return decimal.Zero, &types.ValidationError{Field: col, Value: v[col], Reason: reasons["positive"]}
	}
	return d, nil
}

func lookup(e types.Entity) (entityRules, error) {
	r, ok := rules[e]
	if !ok {
		return entityRules{}, fmt.Errorf("%w: %q", types.ErrUnknownEntity, string(e))
	}
	return r, nil
}
