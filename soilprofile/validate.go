package soilprofile

import (
	"fmt"
	"math"
	"sort"

	"github.com/strataworks/stratum/params"
)

// Validate checks the structural invariants of the profile:
//
//   - at least one layer, each with finite bounds and positive thickness;
//   - layers sorted ascending and contiguous (each layer's bottom equals
//     the next layer's top);
//   - every parameter present in one layer present in all layers, in the
//     same form (constant or linear) everywhere.
//
// Editing operations validate their inputs before mutating, so a profile
// that was valid stays valid; Validate exists for construction and for
// callers that assemble layers by hand.
func (sp *SoilProfile) Validate() error {
	if len(sp.layers) == 0 {
		return fmt.Errorf("%w: profile has no layers", ErrInvalidLayering)
	}
	for i, l := range sp.layers {
		// NaN bounds would slip through the ordering checks below, every
		// comparison against NaN being false.
		if !finite(l.DepthFrom) || !finite(l.DepthTo) {
			return fmt.Errorf("%w: layer %d spans [%v, %v], bounds must be finite",
				ErrInvalidLayering, i, l.DepthFrom, l.DepthTo)
		}
		if l.DepthTo <= l.DepthFrom {
			return fmt.Errorf("%w: layer %d spans [%v, %v]",
				ErrInvalidLayering, i, l.DepthFrom, l.DepthTo)
		}
		if i > 0 && l.DepthFrom != sp.layers[i-1].DepthTo {
			return fmt.Errorf("%w: layer %d starts at %v but layer %d ends at %v, continuous transitions are required",
				ErrInvalidLayering, i, l.DepthFrom, i-1, sp.layers[i-1].DepthTo)
		}
	}

	ref := sp.layers[0]
	for i, l := range sp.layers[1:] {
		if len(l.Numerics) != len(ref.Numerics) || len(l.Strings) != len(ref.Strings) {
			return fmt.Errorf("%w: layer %d does not carry the same parameters as layer 0",
				ErrMissingPairedColumn, i+1)
		}
		for name, v := range l.Numerics {
			refVal, ok := ref.Numerics[name]
			if !ok {
				return fmt.Errorf("%w: parameter %q missing from layer 0",
					ErrMissingPairedColumn, name)
			}
			if refVal.Kind() != v.Kind() {
				return fmt.Errorf("%w: parameter %q is %v in layer 0 but %v in layer %d",
					ErrMissingPairedColumn, name, refVal.Kind(), v.Kind(), i+1)
			}
		}
		for label := range l.Strings {
			if _, ok := ref.Strings[label]; !ok {
				return fmt.Errorf("%w: string parameter %q missing from layer 0",
					ErrMissingPairedColumn, label)
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sortNames(names []params.Name) {
	sort.Slice(names, func(i, j int) bool {
		return names[i].String() < names[j].String()
	})
}

func sortStrings(ss []string) {
	sort.Strings(ss)
}
