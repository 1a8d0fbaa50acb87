package soilprofile

import (
	"fmt"
	"math"

	"github.com/strataworks/stratum/params"
)

// Keep selects which layer's attributes survive a merge.
type Keep int

const (
	// KeepTop retains the upper layer's attributes.
	KeepTop Keep = iota
	// KeepBottom retains the lower layer's attributes.
	KeepBottom
)

// InsertLayerTransition splits the layer containing depth into two layers at
// that depth. String and constant parameters are copied to both sub-layers;
// linearly varying parameters are interpolated so that the upper sub-layer's
// "to" equals the lower sub-layer's "from" at the new boundary. Inserting at
// an existing transition (including the profile top and bottom) is a no-op
// recorded as a warning.
func (sp *SoilProfile) InsertLayerTransition(depth float64) error {
	if depth < sp.MinDepth() || depth > sp.MaxDepth() {
		return fmt.Errorf("%w: transition at %v outside [%v, %v]",
			ErrDepthOutOfRange, depth, sp.MinDepth(), sp.MaxDepth())
	}
	if sp.hasTransition(depth) {
		sp.diag.warnf("InsertLayerTransition",
			"depth %v is already at a layer transition, ignored", depth)
		return nil
	}

	idx := -1
	for i, l := range sp.layers {
		if l.DepthFrom < depth && depth < l.DepthTo {
			idx = i
			break
		}
	}
	// Unreachable given the bounds and transition checks above.
	if idx < 0 {
		return fmt.Errorf("%w: no layer contains %v", ErrDepthOutOfRange, depth)
	}

	src := sp.layers[idx]
	upper := src.clone()
	lower := src.clone()
	upper.DepthTo = depth
	lower.DepthFrom = depth
	for name, v := range src.Numerics {
		if !v.IsLinear() {
			continue
		}
		from, to := v.Bounds()
		mid := v.At(depth, src.DepthFrom, src.DepthTo)
		upper.Numerics[name] = params.Linear(from, mid)
		lower.Numerics[name] = params.Linear(mid, to)
	}

	sp.layers = append(sp.layers, Layer{})
	copy(sp.layers[idx+2:], sp.layers[idx+1:])
	sp.layers[idx] = upper
	sp.layers[idx+1] = lower
	return nil
}

// MergeLayers combines the index-adjacent layers i and j (j must equal i+1)
// into one layer spanning both, discarding the interior boundary. keep
// selects whose non-depth attributes the merged layer carries.
func (sp *SoilProfile) MergeLayers(i, j int, keep Keep) error {
	if i < 0 || j >= len(sp.layers) {
		return fmt.Errorf("layer indices (%d, %d) out of range, profile has %d layers",
			i, j, len(sp.layers))
	}
	if j != i+1 {
		return fmt.Errorf("%w: (%d, %d)", ErrNotAdjacent, i, j)
	}

	var merged Layer
	if keep == KeepTop {
		merged = sp.layers[i].clone()
	} else {
		merged = sp.layers[j].clone()
	}
	merged.DepthFrom = sp.layers[i].DepthFrom
	merged.DepthTo = sp.layers[j].DepthTo

	sp.layers[i] = merged
	sp.layers = append(sp.layers[:j], sp.layers[j+1:]...)
	return nil
}

// MergeSoilTypes merges consecutive runs of layers sharing an identical
// value of the given string parameter. The merged layer keeps the first
// run member's attributes, except that linearly varying parameters span the
// run: "from" of the first member to "to" of the last, discarding interior
// values.
func (sp *SoilProfile) MergeSoilTypes(labelParam string) error {
	if !sp.hasString(labelParam) {
		return fmt.Errorf("%w: %q not in string parameters %v",
			ErrUnknownParameter, labelParam, sp.stringOrder)
	}

	var out []Layer
	for _, l := range sp.layers {
		if len(out) == 0 || out[len(out)-1].Strings[labelParam] != l.Strings[labelParam] {
			out = append(out, l.clone())
			continue
		}
		run := &out[len(out)-1]
		for name, v := range run.Numerics {
			if !v.IsLinear() {
				continue
			}
			from, _ := v.Bounds()
			_, to := l.Numerics[name].Bounds()
			run.Numerics[name] = params.Linear(from, to)
		}
		run.DepthTo = l.DepthTo
	}
	sp.layers = out
	return nil
}

// AdjustLayerTransition moves an existing layer transition from
// currentDepth to newDepth. The transition is located within tolerance of
// currentDepth to cope with floating precision; linearly varying values are
// not re-interpolated, matching the treatment of a surveyed boundary whose
// position was corrected. newDepth must stay inside the two layers sharing
// the boundary.
func (sp *SoilProfile) AdjustLayerTransition(currentDepth, newDepth, tolerance float64) error {
	above, below := -1, -1
	for i, l := range sp.layers {
		if math.Abs(l.DepthTo-currentDepth) < tolerance {
			above = i
		}
		if math.Abs(l.DepthFrom-currentDepth) < tolerance {
			below = i
		}
	}
	if above < 0 || below < 0 {
		sp.diag.warnf("AdjustLayerTransition",
			"no interior transition within %v of depth %v", tolerance, currentDepth)
		return nil
	}
	if newDepth <= sp.layers[above].DepthFrom || newDepth >= sp.layers[below].DepthTo {
		return fmt.Errorf("%w: new transition %v must stay inside (%v, %v)",
			ErrDepthOutOfRange, newDepth, sp.layers[above].DepthFrom, sp.layers[below].DepthTo)
	}
	sp.layers[above].DepthTo = newDepth
	sp.layers[below].DepthFrom = newDepth
	return nil
}

// Cut returns an independent copy of the profile restricted to
// [top, bottom]. Boundary layers are re-interpolated: linearly varying
// parameters get new "from"/"to" values at the cut points. Bounds wider
// than the profile are clamped with a warning.
func (sp *SoilProfile) Cut(top, bottom float64) (*SoilProfile, error) {
	if top < sp.MinDepth() {
		sp.diag.warnf("Cut", "top depth %v is above the profile top %v, clamped",
			top, sp.MinDepth())
		top = sp.MinDepth()
	}
	if bottom > sp.MaxDepth() {
		sp.diag.warnf("Cut", "bottom depth %v is below the profile bottom %v, clamped",
			bottom, sp.MaxDepth())
		bottom = sp.MaxDepth()
	}
	if top >= bottom {
		return nil, fmt.Errorf("%w: cut bounds [%v, %v] are empty",
			ErrDepthOutOfRange, top, bottom)
	}

	out := &SoilProfile{
		numericOrder: append([]params.Name(nil), sp.numericOrder...),
		stringOrder:  append([]string(nil), sp.stringOrder...),
		depthName:    sp.depthName,
		depthUnit:    sp.depthUnit,
	}
	out.diag.logger = sp.diag.logger
	for _, l := range sp.layers {
		if l.DepthFrom < bottom && l.DepthTo > top {
			out.layers = append(out.layers, l.clone())
		}
	}

	// Re-interpolate the boundary layers at the cut points using the uncut
	// layer extents and values, then adjust the depths. When the cut spans
	// a single layer both ends are re-interpolated from the same original
	// value.
	first := &out.layers[0]
	last := &out.layers[len(out.layers)-1]
	origFirst := first.clone()
	origLast := last.clone()
	for name, v := range origFirst.Numerics {
		if v.IsLinear() {
			_, to := first.Numerics[name].Bounds()
			first.Numerics[name] = params.Linear(
				v.At(top, origFirst.DepthFrom, origFirst.DepthTo), to)
		}
	}
	for name, v := range origLast.Numerics {
		if v.IsLinear() {
			from, _ := last.Numerics[name].Bounds()
			last.Numerics[name] = params.Linear(
				from, v.At(bottom, origLast.DepthFrom, origLast.DepthTo))
		}
	}
	first.DepthFrom = top
	last.DepthTo = bottom
	return out, nil
}

// ConvertToConstant replaces a linearly varying parameter by a constant
// one, reducing each layer's from/to pair with the given rule.
func (sp *SoilProfile) ConvertToConstant(name string, rule params.Rule) error {
	pn, err := sp.numericName(name)
	if err != nil {
		return err
	}
	if !sp.isLinearName(pn) {
		return fmt.Errorf("%w: %q", ErrNotLinear, name)
	}
	for i := range sp.layers {
		sp.layers[i].Numerics[pn] = params.Constant(sp.layers[i].Numerics[pn].Reduce(rule))
	}
	return nil
}

// RemoveParameter drops a numeric or string parameter from every layer.
// Linearly varying parameters are addressed by their semantic name; both
// halves are removed together.
func (sp *SoilProfile) RemoveParameter(name string) error {
	if pn, err := sp.numericName(name); err == nil {
		for i := range sp.layers {
			delete(sp.layers[i].Numerics, pn)
		}
		for i, n := range sp.numericOrder {
			if n == pn {
				sp.numericOrder = append(sp.numericOrder[:i], sp.numericOrder[i+1:]...)
				break
			}
		}
		return nil
	}
	if sp.hasString(name) {
		for i := range sp.layers {
			delete(sp.layers[i].Strings, name)
		}
		for i, n := range sp.stringOrder {
			if n == name {
				sp.stringOrder = append(sp.stringOrder[:i], sp.stringOrder[i+1:]...)
				break
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// ShiftDepths adds offset to every layer boundary, moving the whole profile
// up or down the depth axis.
func (sp *SoilProfile) ShiftDepths(offset float64) {
	for i := range sp.layers {
		sp.layers[i].DepthFrom += offset
		sp.layers[i].DepthTo += offset
	}
}

// InvertDepthSign negates the depth axis, e.g. to switch between depths
// below mudline and elevations relative to a datum. Layer order and each
// layer's from/to orientation are flipped so the profile stays valid:
// the deepest layer becomes the first, and linearly varying values swap
// their from and to ends.
func (sp *SoilProfile) InvertDepthSign() {
	for i, j := 0, len(sp.layers)-1; i < j; i, j = i+1, j-1 {
		sp.layers[i], sp.layers[j] = sp.layers[j], sp.layers[i]
	}
	for i := range sp.layers {
		l := &sp.layers[i]
		l.DepthFrom, l.DepthTo = -l.DepthTo, -l.DepthFrom
		for name, v := range l.Numerics {
			if v.IsLinear() {
				from, to := v.Bounds()
				l.Numerics[name] = params.Linear(to, from)
			}
		}
	}
}
