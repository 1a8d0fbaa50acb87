package soilprofile

import (
	"fmt"
	"math"

	"github.com/strataworks/stratum/internal/units"
	"github.com/strataworks/stratum/params"
)

const (
	defaultDepthName = "Depth"
	defaultDepthUnit = "m"
)

// Record is one tabular row keyed by column name. Numeric columns hold
// float64 values (int is accepted and widened), string columns hold strings.
// A missing numeric cell becomes NaN, a missing string cell becomes "".
type Record map[string]any

// RecordOptions configures the tabular construction boundary. The zero value
// uses "Depth from [m]" / "Depth to [m]" as the depth columns.
type RecordOptions struct {
	// DepthName and DepthUnit override the depth column convention, e.g.
	// DepthName "z", DepthUnit "ft" expects "z from [ft]" / "z to [ft]".
	DepthName string
	DepthUnit string

	// ColumnMapping renames input columns before classification; keys are
	// input names, values the names to use.
	ColumnMapping map[string]string
}

// FromRecords builds a profile from ordered tabular rows following the
// column-name convention: "<Name> from [<unit>]" / "<Name> to [<unit>]"
// pairs define linearly varying parameters, "<Name> [<unit>]" defines a
// constant parameter, and columns without a unit suffix are string-valued.
// This is the only place the textual convention is interpreted; the
// resulting profile stores explicit constant/linear values.
func FromRecords(rows []Record, opts RecordOptions) (*SoilProfile, error) {
	if opts.DepthName == "" {
		opts.DepthName = defaultDepthName
	}
	if opts.DepthUnit == "" {
		opts.DepthUnit = defaultDepthUnit
	}
	depthName := params.Name{Label: opts.DepthName, Unit: opts.DepthUnit}
	depthFromCol := depthName.FromColumn()
	depthToCol := depthName.ToColumn()

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidLayering)
	}

	// Collect the column set across all rows. Records are maps, so column
	// order is made deterministic by sorting.
	var columns []string
	seen := map[string]bool{}
	rename := func(col string) string {
		if mapped, ok := opts.ColumnMapping[col]; ok {
			return mapped
		}
		return col
	}
	for _, row := range rows {
		for col := range row {
			renamed := rename(col)
			if !seen[renamed] {
				seen[renamed] = true
				columns = append(columns, renamed)
			}
		}
	}
	sortStrings(columns)

	if !seen[depthFromCol] {
		return nil, fmt.Errorf("%w: required column %q not found", ErrInvalidLayering, depthFromCol)
	}
	if !seen[depthToCol] {
		return nil, fmt.Errorf("%w: required column %q not found", ErrInvalidLayering, depthToCol)
	}

	// Classify the parameter columns and check from/to pairing.
	type column struct {
		col  string
		name params.Name
		role params.Role
	}
	var cols []column
	for _, c := range columns {
		if c == depthFromCol || c == depthToCol {
			continue
		}
		name, role := params.ClassifyColumn(c)
		switch role {
		case params.RoleFrom:
			if !seen[name.ToColumn()] {
				return nil, fmt.Errorf("%w: column %q has no %q counterpart",
					ErrMissingPairedColumn, c, name.ToColumn())
			}
		case params.RoleTo:
			if !seen[name.FromColumn()] {
				return nil, fmt.Errorf("%w: column %q has no %q counterpart",
					ErrMissingPairedColumn, c, name.FromColumn())
			}
		}
		cols = append(cols, column{col: c, name: name, role: role})
	}

	sp := &SoilProfile{
		depthName: opts.DepthName,
		depthUnit: opts.DepthUnit,
	}
	for i, row := range rows {
		norm := make(map[string]any, len(row))
		for k, v := range row {
			norm[rename(k)] = v
		}
		cell := func(col string) (any, bool) {
			v, ok := norm[col]
			return v, ok
		}
		number := func(col string) (float64, error) {
			v, ok := cell(col)
			if !ok || v == nil {
				return math.NaN(), nil
			}
			switch n := v.(type) {
			case float64:
				return n, nil
			case int:
				return float64(n), nil
			default:
				return 0, fmt.Errorf("row %d: column %q holds %T, expected a number", i, col, v)
			}
		}

		layer := Layer{
			Strings:  map[string]string{},
			Numerics: map[params.Name]params.Value{},
		}
		var err error
		if layer.DepthFrom, err = number(depthFromCol); err != nil {
			return nil, err
		}
		if layer.DepthTo, err = number(depthToCol); err != nil {
			return nil, err
		}

		for _, c := range cols {
			switch c.role {
			case params.RoleString:
				s := ""
				if v, ok := cell(c.col); ok && v != nil {
					str, isStr := v.(string)
					if !isStr {
						return nil, fmt.Errorf("row %d: column %q holds %T, expected a string", i, c.col, v)
					}
					s = str
				}
				layer.Strings[c.name.Label] = s
			case params.RoleConstant:
				v, err := number(c.col)
				if err != nil {
					return nil, err
				}
				layer.Numerics[c.name] = params.Constant(v)
			case params.RoleFrom:
				from, err := number(c.col)
				if err != nil {
					return nil, err
				}
				to, err := number(c.name.ToColumn())
				if err != nil {
					return nil, err
				}
				layer.Numerics[c.name] = params.Linear(from, to)
			case params.RoleTo:
				// Handled together with RoleFrom.
			}
		}
		sp.layers = append(sp.layers, layer)
	}

	// Parameter order: sorted column order, condensed for linear pairs.
	for _, c := range cols {
		switch c.role {
		case params.RoleString:
			sp.stringOrder = append(sp.stringOrder, c.name.Label)
		case params.RoleConstant, params.RoleFrom:
			sp.numericOrder = append(sp.numericOrder, c.name)
		}
	}

	if err := sp.Validate(); err != nil {
		return nil, err
	}
	return sp, nil
}

// DepthColumns returns the depth column names in the profile's current
// depth reference, e.g. ("Depth from [m]", "Depth to [m]").
func (sp *SoilProfile) DepthColumns() (fromCol, toCol string) {
	n := params.Name{Label: sp.depthName, Unit: sp.depthUnit}
	return n.FromColumn(), n.ToColumn()
}

// ConvertDepthReference rescales the depth axis by multiplier and renames
// the depth reference, e.g. from ("Depth", "ft") to ("Depth", "m") with
// multiplier 0.3048. The multiplier must be positive; linearly varying
// parameter values are unaffected.
func (sp *SoilProfile) ConvertDepthReference(newName, newUnit string, multiplier float64) error {
	if multiplier <= 0 {
		return fmt.Errorf("depth multiplier must be positive, got %v", multiplier)
	}
	for i := range sp.layers {
		sp.layers[i].DepthFrom *= multiplier
		sp.layers[i].DepthTo *= multiplier
	}
	sp.depthName = newName
	sp.depthUnit = newUnit
	return nil
}

// ConvertDepthUnit rescales the depth axis to a recognised length unit
// (m, cm, mm, ft, in), deriving the multiplier from the profile's current
// unit. The depth name is kept.
func (sp *SoilProfile) ConvertDepthUnit(newUnit string) error {
	factor, err := units.Factor(sp.depthUnit, newUnit)
	if err != nil {
		return err
	}
	return sp.ConvertDepthReference(sp.depthName, newUnit, factor)
}
