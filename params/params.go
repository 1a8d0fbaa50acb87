// Package params provides parameter identity and value representation for
// layered soil profiles.
//
// A soil parameter is identified by a label and a unit, displayed as
// "<Label> [<unit>]" (e.g. "Total unit weight [kN/m3]"). Numeric values are
// either constant within a layer or vary linearly from the layer top to the
// layer bottom. The textual "from"/"to" column convention used by tabular
// inputs is handled here so that the rest of the model can work with an
// explicit tagged variant instead of string suffixes.
package params

import (
	"fmt"
	"regexp"
	"strings"
)

// Name identifies a numeric soil parameter by label and unit.
type Name struct {
	Label string
	Unit  string
}

// String renders the canonical display form, e.g. "qc [MPa]".
func (n Name) String() string {
	return fmt.Sprintf("%s [%s]", n.Label, n.Unit)
}

// FromColumn and ToColumn render the column names used for linearly varying
// parameters in tabular input and output.
func (n Name) FromColumn() string {
	return fmt.Sprintf("%s from [%s]", n.Label, n.Unit)
}

func (n Name) ToColumn() string {
	return fmt.Sprintf("%s to [%s]", n.Label, n.Unit)
}

var namePattern = regexp.MustCompile(`^(.+) \[(.+)\]$`)

// ParseName parses a "<Label> [<unit>]" display name.
func ParseName(s string) (Name, error) {
	m := namePattern.FindStringSubmatch(s)
	if m == nil {
		return Name{}, fmt.Errorf("parameter %q is not in '<name> [<unit>]' form", s)
	}
	return Name{Label: m[1], Unit: m[2]}, nil
}

// IsNumericColumn reports whether a column name follows the numeric
// parameter convention (a unit between square brackets).
func IsNumericColumn(col string) bool {
	return namePattern.MatchString(col)
}

// Role describes how a tabular column contributes to a parameter.
type Role int

const (
	// RoleString is a column without a unit suffix, holding string values.
	RoleString Role = iota
	// RoleConstant is a plain "<Name> [<unit>]" numeric column.
	RoleConstant
	// RoleFrom is the top-of-layer half of a linearly varying parameter.
	RoleFrom
	// RoleTo is the bottom-of-layer half of a linearly varying parameter.
	RoleTo
)

// ClassifyColumn splits a tabular column name into the semantic parameter
// name and the role the column plays. For string columns the returned Name
// has the column text as label and an empty unit.
func ClassifyColumn(col string) (Name, Role) {
	m := namePattern.FindStringSubmatch(col)
	if m == nil {
		return Name{Label: col}, RoleString
	}
	label, unit := m[1], m[2]
	switch {
	case strings.HasSuffix(label, " from"):
		return Name{Label: strings.TrimSuffix(label, " from"), Unit: unit}, RoleFrom
	case strings.HasSuffix(label, " to"):
		return Name{Label: strings.TrimSuffix(label, " to"), Unit: unit}, RoleTo
	default:
		return Name{Label: label, Unit: unit}, RoleConstant
	}
}
