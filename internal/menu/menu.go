// Package menu implements the interactive text front end. It collects raw
// field values, hands them to the validators, and calls the store; every
// error is reported and the loop returns to the menu it came from.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// Store is the data-access contract the menu drives.
type Store interface {
	FetchAll(ctx context.Context, e types.Entity) ([]any, error)
	Get(ctx context.Context, e types.Entity, id int64) (any, error)
	Insert(ctx context.Context, rec types.Record) (int64, error)
	Update(ctx context.Context, id int64, rec types.Record) error
	Delete(ctx context.Context, e types.Entity, id int64) error
	Dependents(ctx context.Context, e types.Entity, id int64) (types.Dependents, error)
	DeleteCascade(ctx context.Context, e types.Entity, id int64) (types.Dependents, error)
	DonationsBy(ctx context.Context, e types.Entity, id int64) ([]types.Donation, error)
	EventsByVolunteer(ctx context.Context, volunteerID int64) ([]types.Event, error)
}

var (
	// errQuit ends the loop when input is exhausted.
	errQuit = errors.New("input closed")

	// errReported marks an error the user has already been told about.
	errReported = errors.New("already reported")
)

// mainEntities is the order entities appear in the main menu.
var mainEntities = []types.Entity{
	types.EntityDonor,
	types.EntityEvent,
	types.EntityBusiness,
	types.EntityBeneficiary,
	types.EntityDonation,
	types.EntityVolunteer,
}

const rule = "------------------------------------------------------------"

// Menu is one interactive session.
type Menu struct {
	store  Store
	in     *bufio.Scanner
	out    io.Writer
	logger ectologger.Logger
}

// New creates a menu reading answers from in and writing to out.
func New(store Store, in io.Reader, out io.Writer, logger ectologger.Logger) *Menu {
	return &Menu{
		store:  store,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run shows the main menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	m.println("Welcome to the Donation Management System")
	for {
		m.println("")
		m.println(rule)
		m.println("Main Menu")
		m.println(rule)
		for i, e := range mainEntities {
			m.printf("%d. %s Management\n", i+1, e.Label())
		}
		search := len(mainEntities) + 1
		exit := search + 1
		m.printf("%d. Search Records\n", search)
		m.printf("%d. Exit\n", exit)
		m.println(rule)

		choice, err := m.choose(exit)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case choice == 0:
			continue
		case choice == exit:
			m.println("Thank you for using the Donation Management System. Goodbye!")
			return nil
		case choice == search:
			err = m.searchMenu(ctx)
		default:
			err = m.entityMenu(ctx, mainEntities[choice-1])
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// choose reads a menu choice between 1 and limit. An invalid answer is
// reported and yields 0.
func (m *Menu) choose(limit int) (int, error) {
	answer, err := m.ask(fmt.Sprintf("Enter your choice (1-%d): ", limit))
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(answer)
	if convErr != nil || n < 1 || n > limit {
		m.printf("Invalid choice. Please enter a number between 1 and %d.\n", limit)
		return 0, nil
	}
	return n, nil
}

// ask writes the prompt and returns the trimmed answer.
func (m *Menu) ask(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			m.logger.WithError(err).Error("reading input failed")
		}
		m.println("")
		return "", errQuit
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
