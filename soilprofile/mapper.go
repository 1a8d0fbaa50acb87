package soilprofile

import (
	"fmt"
	"sort"
)

// MapOptions configures Map. The zero value maps every parameter onto the
// given nodes with depth column "z [m]".
type MapOptions struct {
	// DepthKey names the depth column of the result (default "z [m]").
	DepthKey string

	// KeysToMap restricts the mapped columns to the named parameters.
	// Empty means all parameters.
	KeysToMap []string

	// IncludeLayerTransitions unions the profile's interior transition
	// depths into the node sequence.
	IncludeLayerTransitions bool

	// InvertSign negates the output depth column; Offset is then added.
	// Both affect only the depth column, never the parameter values.
	InvertSign bool
	Offset     float64
}

// Mapping is a flat per-node table: one depth per row plus one column per
// mapped parameter.
type Mapping struct {
	DepthKey string
	Depths   []float64

	// Numeric columns keyed by display name; Strings by bare label.
	Numeric map[string][]float64
	Strings map[string][]string

	// ColumnOrder lists the mapped parameter columns in profile order,
	// numeric before string.
	ColumnOrder []string
}

// ParameterSeries returns the global piecewise-linear series of a numeric
// parameter: depths interleaved as from0, to0, from1, to1, ... with the
// per-layer values. Constant parameters repeat their value at both layer
// ends. The duplicated depths at layer transitions encode the jump between
// layers.
func (sp *SoilProfile) ParameterSeries(name string) (depths, values []float64, err error) {
	pn, err := sp.numericName(name)
	if err != nil {
		return nil, nil, err
	}
	depths = make([]float64, 0, 2*len(sp.layers))
	values = make([]float64, 0, 2*len(sp.layers))
	for _, l := range sp.layers {
		from, to := l.Numerics[pn].Bounds()
		depths = append(depths, l.DepthFrom, l.DepthTo)
		values = append(values, from, to)
	}
	return depths, values, nil
}

// Map resamples the profile onto the given strictly ascending node depths,
// which must all lie inside [MinDepth, MaxDepth]. Constant numeric and
// string parameters take the owning layer's value, with nodes on a layer
// boundary taking the deeper layer. Linearly varying parameters are
// interpolated through the profile-wide piecewise-linear series.
func (sp *SoilProfile) Map(nodes []float64, opts MapOptions) (*Mapping, error) {
	if opts.DepthKey == "" {
		opts.DepthKey = fmt.Sprintf("z [%s]", sp.depthUnit)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrNodesNotAscending)
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i] <= nodes[i-1] {
			return nil, fmt.Errorf("%w: node %d (%v) does not exceed node %d (%v)",
				ErrNodesNotAscending, i, nodes[i], i-1, nodes[i-1])
		}
	}
	if nodes[0] < sp.MinDepth() || nodes[len(nodes)-1] > sp.MaxDepth() {
		return nil, fmt.Errorf("%w: nodes span [%v, %v], profile spans [%v, %v]",
			ErrNodesOutOfRange, nodes[0], nodes[len(nodes)-1], sp.MinDepth(), sp.MaxDepth())
	}

	z := append([]float64(nil), nodes...)
	if opts.IncludeLayerTransitions {
		z = append(z, sp.LayerTransitions(false, false)...)
		sort.Float64s(z)
		z = dedupe(z)
	}

	// Select the columns to produce.
	var numericKeys, stringKeys []string
	if len(opts.KeysToMap) == 0 {
		numericKeys = sp.NumericalParameters(true)
		stringKeys = sp.StringParameters()
	} else {
		for _, key := range opts.KeysToMap {
			switch {
			case sp.hasString(key):
				stringKeys = append(stringKeys, key)
			default:
				if _, err := sp.numericName(key); err != nil {
					return nil, fmt.Errorf("%w: %q is neither a numerical nor a string parameter",
						ErrUnknownParameter, key)
				}
				numericKeys = append(numericKeys, key)
			}
		}
	}

	out := &Mapping{
		DepthKey: opts.DepthKey,
		Depths:   z,
		Numeric:  make(map[string][]float64, len(numericKeys)),
		Strings:  make(map[string][]string, len(stringKeys)),
	}
	out.ColumnOrder = append(out.ColumnOrder, numericKeys...)
	out.ColumnOrder = append(out.ColumnOrder, stringKeys...)

	for _, key := range numericKeys {
		xs, ys, err := sp.ParameterSeries(key)
		if err != nil {
			return nil, err
		}
		col := make([]float64, len(z))
		for i, depth := range z {
			col[i] = interpSeries(depth, xs, ys)
		}
		out.Numeric[key] = col
	}
	for _, key := range stringKeys {
		col := make([]string, len(z))
		for i, depth := range z {
			// Deepest layer containing the node, same boundary rule as
			// constant numeric parameters.
			for _, l := range sp.layers {
				if l.contains(depth) {
					col[i] = l.Strings[key]
				}
			}
		}
		out.Strings[key] = col
	}

	if opts.InvertSign || opts.Offset != 0 {
		depths := make([]float64, len(z))
		for i, depth := range z {
			if opts.InvertSign {
				depth = -depth
			}
			depths[i] = depth + opts.Offset
		}
		out.Depths = depths
	}
	return out, nil
}

// NumRows returns the node count of the mapping.
func (m *Mapping) NumRows() int { return len(m.Depths) }

func dedupe(sorted []float64) []float64 {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
