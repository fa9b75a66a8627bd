package validate

import (
	"fmt"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// Rules returns the input fields of e in prompt order.
func Rules(e types.Entity) ([]FieldRule, error) {
	r, err := lookup(e)
	if err != nil {
		return nil, err
	}
	out := make([]FieldRule, len(r.fields))
	copy(out, r.fields)
	return out, nil
}

// Field validates a single raw value of e and returns its normalized form.
func Field(e types.Entity, field, raw string) (string, error) {
	r, err := lookup(e)
	if err != nil {
		return "", err
	}
	for _, f := range r.fields {
		if f.Name == field {
			return f.check(raw)
		}
	}
	return "", fmt.Errorf("%w: %s has no field %q", types.ErrInvalidData, e, field)
}

// Record validates every field of raw for e and builds the typed record.
// The first failing field is reported as a *types.ValidationError.
func Record(e types.Entity, raw types.Fields) (types.Record, error) {
	r, err := lookup(e)
	if err != nil {
		return nil, err
	}
	v := make(values, len(r.fields))
	for _, f := range r.fields {
		norm, err := f.check(raw.Get(f.Name))
		if err != nil {
			return nil, err
		}
		v[f.Name] = norm
	}
	return r.build(v)
}

// Donor validates raw donor input.
func Donor(raw types.Fields) (*types.Donor, error) {
	return typed[*types.Donor](types.EntityDonor, raw)
}

// Beneficiary validates raw beneficiary input.
func Beneficiary(raw types.Fields) (*types.Beneficiary, error) {
	return typed[*types.Beneficiary](types.EntityBeneficiary, raw)
}

// Event validates raw event input.
func Event(raw types.Fields) (*types.Event, error) {
	return typed[*types.Event](types.EntityEvent, raw)
}

// Business validates raw business input.
func Business(raw types.Fields) (*types.Business, error) {
	return typed[*types.Business](types.EntityBusiness, raw)
}

// Volunteer validates raw volunteer input.
func Volunteer(raw types.Fields) (*types.Volunteer, error) {
	return typed[*types.Volunteer](types.EntityVolunteer, raw)
}

// Donation validates raw donation input.
func Donation(raw types.Fields) (*types.Donation, error) {
	return typed[*types.Donation](types.EntityDonation, raw)
}

func typed[T types.Record](e types.Entity, raw types.Fields) (T, error) {
	var zero T
	rec, err := Record(e, raw)
	if err != nil {
		return zero, err
	}
	t, ok := rec.(T)
	if !ok {
		return zero, types.ErrInvalidData
	}
	return t, nil
}

// ID validates a raw identifier typed at a prompt, such as the row to update
// or delete.
func ID(raw string) (int64, error) {
	r := FieldRule{Name: "id", tag: "required,digits"}
	v, err := r.check(raw)
	if err != nil {
		return 0, err
	}
	n, err := id(values{"id": v}, "id")
	if err != nil {
		return 0, err
	}
	return *n, nil
}
