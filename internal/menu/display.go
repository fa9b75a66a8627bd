package menu

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mesh-intelligence/donations/pkg/types"
)

var printer = message.NewPrinter(language.BritishEnglish)

// money renders an amount in pounds with two decimals and digit grouping.
func money(d decimal.Decimal) string {
	return printer.Sprintf("£%.2f", d.InexactFloat64())
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprint(*id)
}

// formatRecord renders one row on a single line.
func formatRecord(row any) string {
	switch r := row.(type) {
	case *types.Donor:
		return fmt.Sprintf("ID: %d  Name: %s %s  Email: %s  Phone: %s  Address: %s  DOB: %s",
			r.DonorID, r.FirstName, r.LastName, r.Email, r.Phone, r.Address, r.DateOfBirth)
	case *types.Beneficiary:
		return fmt.Sprintf("ID: %d  Name: %s  Type: %s  Address: %s  Support: %s  Priority: %s",
			r.BeneficiaryID, r.Name, r.Type, r.Address, r.SupportDuration, r.FundingPriority)
	case *types.Event:
		return fmt.Sprintf("ID: %d  Name: %s  Date: %s  Location: %s  Goal: %s  Description: %s",
			r.EventID, r.Name, r.Date, r.Location, money(r.FundraisingGoal), r.Description)
	case *types.Business:
		return fmt.Sprintf("ID: %d  Name: %s  Email: %s  Phone: %s  Address: %s  Registered: %s",
			r.BusinessID, r.Name, r.Email, r.Phone, r.Address, r.RegistrationDate)
	case *types.Volunteer:
		return fmt.Sprintf("ID: %d  Name: %s %s  Email: %s  Phone: %s  Address: %s  DOB: %s  Event ID: %d",
			r.VolunteerID, r.FirstName, r.LastName, r.Email, r.Phone, r.Address, r.DateOfBirth, r.EventID)
	case *types.Donation:
		return fmt.Sprintf("ID: %d  Amount: %s  Date: %s  Notes: %s  Donor: %s  Event: %s  Business: %s  Volunteer: %s  Beneficiary: %d",
			r.DonationID, money(r.Amount), r.Date, r.Notes,
			optionalID(r.DonorID), optionalID(r.EventID), optionalID(r.BusinessID), optionalID(r.VolunteerID),
			r.BeneficiaryID)
	default:
		return fmt.Sprint(row)
	}
}
