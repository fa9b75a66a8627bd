package menu

import (
	"context"
	"errors"
	"strings"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// searchMenu offers the relationship lookups.
func (m *Menu) searchMenu(ctx context.Context) error {
	type option struct {
		label string
		run   func(context.Context) error
	}
	byDonations := func(e types.Entity) func(context.Context) error {
		return func(ctx context.Context) error { return m.searchDonations(ctx, e) }
	}
	options := []option{
		{"Search Donations by Donor", byDonations(types.EntityDonor)},
		{"Search Donations by Volunteer", byDonations(types.EntityVolunteer)},
		{"Search Donations by Event", byDonations(types.EntityEvent)},
		{"Search Events by Volunteer", m.searchEvents},
		{"Search Donations by Beneficiary", byDonations(types.EntityBeneficiary)},
		{"Search Donations by Business", byDonations(types.EntityBusiness)},
	}
	back := len(options) + 1

	for {
		m.println("")
		m.println("Search Menu")
		m.println(rule)
		for i, o := range options {
			m.printf("%d. %s\n", i+1, o.label)
		}
		m.printf("%d. Back to Main Menu\n", back)
		m.println(rule)

		choice, err := m.choose(back)
		if err != nil {
			return err
		}
		if choice == 0 {
			continue
		}
		if choice == back {
			return nil
		}
		err = options[choice-1].run(ctx)
		if errors.Is(err, errQuit) {
			return err
		}
		m.report(ctx, types.EntityDonation, err)
	}
}

func (m *Menu) searchDonations(ctx context.Context, e types.Entity) error {
	id, err := m.askID(e, "Enter "+e.Label()+" ID: ")
	if err != nil {
		return err
	}
	donations, err := m.store.DonationsBy(ctx, e, id)
	if err != nil {
		return err
	}

	name := strings.ToLower(e.Label())
	m.println("")
	if len(donations) == 0 {
		m.printf("No donations found for this %s.\n", name)
		return nil
	}
	m.printf("Donations related to this %s:\n", name)
	for i := range donations {
		m.println(formatRecord(&donations[i]))
	}
	return nil
}

func (m *Menu) searchEvents(ctx context.Context) error {
	id, err := m.askID(types.EntityVolunteer, "Enter Volunteer ID: ")
	if err != nil {
		return err
	}
	events, err := m.store.EventsByVolunteer(ctx, id)
	if err != nil {
		return err
	}

	m.println("")
	if len(events) == 0 {
		m.println("No events found for this volunteer.")
		return nil
	}
	m.println("Events this volunteer is involved in:")
	for i := range events {
		m.println(formatRecord(&events[i]))
	}
	return nil
}
