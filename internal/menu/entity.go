package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/donations/internal/validate"
	"github.com/mesh-intelligence/donations/pkg/types"
)

// maxAttempts is how many times a field is asked before the operation is
// abandoned.
const maxAttempts = 2

// entityMenu shows the view/add/update/delete menu for e.
func (m *Menu) entityMenu(ctx context.Context, e types.Entity) error {
	for {
		m.println("")
		m.printf("%s Management\n", e.Label())
		m.println(rule)
		m.printf("1. View All %s\n", e.Plural())
		m.printf("2. Add %s\n", e.Label())
		m.printf("3. Update %s\n", e.Label())
		m.printf("4. Delete %s\n", e.Label())
		m.printf("5. Delete %s With Dependents\n", e.Label())
		m.println("6. Back to Main Menu")
		m.println(rule)

		choice, err := m.choose(6)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			_, err = m.view(ctx, e)
		case 2:
			err = m.add(ctx, e)
		case 3:
			err = m.update(ctx, e)
		case 4:
			err = m.remove(ctx, e)
		case 5:
			err = m.removeCascade(ctx, e)
		case 6:
			return nil
		}
		if errors.Is(err, errQuit) {
			return err
		}
		m.report(ctx, e, err)
	}
}

// view prints every row of e. It reports false when there are none.
func (m *Menu) view(ctx context.Context, e types.Entity) (bool, error) {
	rows, err := m.store.FetchAll(ctx, e)
	if err != nil {
		return false, err
	}
	m.println("")
	if len(rows) == 0 {
		m.printf("No %s found in database.\n", strings.ToLower(e.Plural()))
		return false, nil
	}
	m.printf("All %s:\n", e.Plural())
	for _, row := range rows {
		m.println(formatRecord(row))
	}
	return true, nil
}

func (m *Menu) add(ctx context.Context, e types.Entity) error {
	fields, err := m.collect(e, "Add")
	if err != nil {
		return err
	}
	rec, err := validate.Record(e, fields)
	if err != nil {
		return err
	}
	id, err := m.store.Insert(ctx, rec)
	if err != nil {
		return err
	}
	m.printf("%s added successfully with ID %d.\n", e.Label(), id)
	return nil
}

func (m *Menu) update(ctx context.Context, e types.Entity) error {
	id, err := m.pick(ctx, e, "update")
	if err != nil {
		return err
	}
	if _, err := m.store.Get(ctx, e, id); err != nil {
		return err
	}
	fields, err := m.collect(e, "New")
	if err != nil {
		return err
	}
	rec, err := validate.Record(e, fields)
	if err != nil {
		return err
	}
	if err := m.store.Update(ctx, id, rec); err != nil {
		return err
	}
	m.printf("%s updated successfully.\n", e.Label())
	return nil
}

func (m *Menu) remove(ctx context.Context, e types.Entity) error {
	id, err := m.pick(ctx, e, "delete")
	if err != nil {
		return err
	}
	if err := m.store.Delete(ctx, e, id); err != nil {
		return err
	}
	m.printf("%s deleted successfully.\n", e.Label())
	return nil
}

// removeCascade deletes a row and its dependents after an explicit "yes".
func (m *Menu) removeCascade(ctx context.Context, e types.Entity) error {
	id, err := m.pick(ctx, e, "delete")
	if err != nil {
		return err
	}
	if _, err := m.store.Get(ctx, e, id); err != nil {
		return err
	}
	deps, err := m.store.Dependents(ctx, e, id)
	if err != nil {
		return err
	}

	if deps.Total() == 0 {
		m.println("Nothing references this record.")
	} else {
		m.printf("This will also delete %s, and anything that references them.\n", deps)
	}
	answer, err := m.ask("Type 'yes' to confirm: ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		m.println("Deletion cancelled.")
		return nil
	}

	removed, err := m.store.DeleteCascade(ctx, e, id)
	if err != nil {
		return err
	}
	if removed.Total() == 0 {
		m.printf("%s %d deleted.\n", e.Label(), id)
	} else {
		m.printf("%s %d deleted along with %s.\n", e.Label(), id, removed)
	}
	return nil
}

// pick lists e and asks which row the action applies to.
func (m *Menu) pick(ctx context.Context, e types.Entity, action string) (int64, error) {
	found, err := m.view(ctx, e)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errReported
	}
	return m.askID(e, fmt.Sprintf("Enter %s ID to %s: ", e.Label(), action))
}

// askID reads a positive numeric key.
func (m *Menu) askID(e types.Entity, prompt string) (int64, error) {
	raw, err := m.ask(prompt)
	if err != nil {
		return 0, err
	}
	id, err := validate.ID(raw)
	if err != nil {
		m.printf("%s ID must be numeric.\n", e.Label())
		return 0, errReported
	}
	return id, nil
}

// collect prompts for every input field of e. A rejected value is asked
// again; after maxAttempts rejections the operation is abandoned.
func (m *Menu) collect(e types.Entity, action string) (types.Fields, error) {
	rules, err := validate.Rules(e)
	if err != nil {
		return nil, err
	}

	fields := make(types.Fields, len(rules))
	for _, f := range rules {
		if f.Hint != "" {
			m.printf("Tip: %s\n", f.Hint)
		}
		var value string
		for attempt := 1; ; attempt++ {
			raw, err := m.ask(fmt.Sprintf("%s %s: ", action, f.Label))
			if err != nil {
				return nil, err
			}
			value, err = validate.Field(e, f.Name, raw)
			if err == nil {
				break
			}
			var ve *types.ValidationError
			if !errors.As(err, &ve) {
				return nil, err
			}
			m.printf("%s %s.\n", f.Label, ve.Reason)
			if attempt == maxAttempts {
				m.println("Too many invalid attempts. Returning to menu.")
				return nil, errReported
			}
		}
		fields[f.Name] = value
	}
	return fields, nil
}

// report tells the user why an action failed. The menu always continues.
func (m *Menu) report(ctx context.Context, e types.Entity, err error) {
	if err == nil || errors.Is(err, errReported) {
		return
	}

	var (
		ve *types.ValidationError
		cv *types.ConstraintViolation
		de *types.DependentsError
	)
	switch {
	case errors.As(err, &ve):
		m.printf("Invalid input: %s.\n", ve)
	case errors.As(err, &de):
		m.printf("Cannot delete %s %d: it is referenced by %s.\n", de.Entity.Label(), de.ID, de.Dependents)
		m.println("Delete or reassign those records first, or use Delete With Dependents.")
	case errors.As(err, &cv):
		m.println(describeConstraint(cv))
	case errors.Is(err, types.ErrNotFound):
		m.printf("No %s found with that ID.\n", strings.ToLower(e.Label()))
	case errors.Is(err, types.ErrStorage):
		m.printf("The database could not complete the operation: %v\n", err)
	default:
		m.logger.WithContext(ctx).WithError(err).WithField("entity", string(e)).Error("menu action failed")
		m.printf("Error: %v\n", err)
	}
}

func describeConstraint(cv *types.ConstraintViolation) string {
	field := strings.ReplaceAll(cv.Field, "_", " ")
	switch cv.Kind {
	case types.ConstraintUnique:
		return fmt.Sprintf("A %s with this %s already exists.", strings.ToLower(cv.Entity.Label()), field)
	case types.ConstraintForeignKey:
		if cv.Detail != "" {
			return fmt.Sprintf("The %s does not match an existing record (%s).", field, cv.Detail)
		}
		return fmt.Sprintf("The %s does not match an existing record.", field)
	default:
		return fmt.Sprintf("The %s was rejected by the database: %s.", strings.ToLower(cv.Entity.Label()), cv)
	}
}
