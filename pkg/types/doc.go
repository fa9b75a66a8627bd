// Package types defines the entity model, raw input fields, configuration and
// the error taxonomy shared by the donations store, validators and menus.
//
// Storage is driven by the closed Entity enum; callers never pass table or
// column names directly.
package types
