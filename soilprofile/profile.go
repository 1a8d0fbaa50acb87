// Package soilprofile implements the layered-earth profile model: an ordered
// sequence of contiguous depth intervals carrying string-valued and
// numeric-valued soil parameters, with editing, resampling and
// depth-integration operations.
//
// A SoilProfile is an owned, value-semantic structure. Editing operations
// mutate the receiver in place after validating their inputs; Cut returns an
// independent clipped copy and Clone returns a full deep copy. Nothing shares
// backing storage with anything else.
package soilprofile

import (
	"fmt"
	"log"

	"github.com/strataworks/stratum/params"
)

// Layer is one depth interval [DepthFrom, DepthTo] with its attributes.
// String parameters are keyed by bare label, numeric parameters by
// params.Name.
type Layer struct {
	DepthFrom float64
	DepthTo   float64
	Strings   map[string]string
	Numerics  map[params.Name]params.Value
}

// Thickness returns DepthTo - DepthFrom.
func (l Layer) Thickness() float64 { return l.DepthTo - l.DepthFrom }

// Center returns the mid-depth of the layer.
func (l Layer) Center() float64 { return 0.5 * (l.DepthFrom + l.DepthTo) }

func (l Layer) contains(z float64) bool {
	return l.DepthFrom <= z && z <= l.DepthTo
}

func (l Layer) clone() Layer {
	out := Layer{DepthFrom: l.DepthFrom, DepthTo: l.DepthTo}
	if l.Strings != nil {
		out.Strings = make(map[string]string, len(l.Strings))
		for k, v := range l.Strings {
			out.Strings[k] = v
		}
	}
	if l.Numerics != nil {
		out.Numerics = make(map[params.Name]params.Value, len(l.Numerics))
		for k, v := range l.Numerics {
			out.Numerics[k] = v
		}
	}
	return out
}

// SoilProfile is an ordered sequence of contiguous layers.
type SoilProfile struct {
	layers []Layer

	// Column order of parameters, preserved from construction so tabular
	// output reproduces the input ordering.
	numericOrder []params.Name
	stringOrder  []string

	depthName string
	depthUnit string

	diag Diagnostics
}

// TieBreak selects which layer owns a depth that falls exactly on a boundary
// shared by two layers. The zero value is TieShallowest.
type TieBreak int

const (
	// TieShallowest assigns the boundary to the layer above.
	TieShallowest TieBreak = iota
	// TieDeepest assigns the boundary to the layer below.
	TieDeepest
)

// FromLayers builds a profile from an ordered layer slice. The layers are
// deep-copied and the structural invariants are checked before the profile
// is returned. Parameter ordering is alphabetical; tabular inputs go through
// FromRecords instead.
func FromLayers(layers []Layer) (*SoilProfile, error) {
	sp := &SoilProfile{
		layers:    make([]Layer, 0, len(layers)),
		depthName: defaultDepthName,
		depthUnit: defaultDepthUnit,
	}
	for _, l := range layers {
		sp.layers = append(sp.layers, l.clone())
	}
	sp.rebuildOrder()
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	return sp, nil
}

// Blank builds a single-layer profile, by convention used as a starting
// point for interactive layering. Soil type and bulk unit weight get the
// given values ("Total unit weight [kN/m3]" column).
func Blank(minDepth, maxDepth float64, soilType string, bulkUnitWeight float64) (*SoilProfile, error) {
	if maxDepth <= minDepth {
		return nil, fmt.Errorf("%w: maximum depth %v must exceed minimum depth %v",
			ErrInvalidLayering, maxDepth, minDepth)
	}
	return FromLayers([]Layer{{
		DepthFrom: minDepth,
		DepthTo:   maxDepth,
		Strings:   map[string]string{"Soil type": soilType},
		Numerics: map[params.Name]params.Value{
			{Label: "Total unit weight", Unit: "kN/m3"}: params.Constant(bulkUnitWeight),
		},
	}})
}

// Clone returns an independent deep copy of the profile. The copy starts
// with an empty warning list but keeps the configured logger.
func (sp *SoilProfile) Clone() *SoilProfile {
	out := &SoilProfile{
		layers:       make([]Layer, 0, len(sp.layers)),
		numericOrder: append([]params.Name(nil), sp.numericOrder...),
		stringOrder:  append([]string(nil), sp.stringOrder...),
		depthName:    sp.depthName,
		depthUnit:    sp.depthUnit,
	}
	for _, l := range sp.layers {
		out.layers = append(out.layers, l.clone())
	}
	out.diag.logger = sp.diag.logger
	return out
}

// NumLayers returns the layer count.
func (sp *SoilProfile) NumLayers() int { return len(sp.layers) }

// Layer returns a deep copy of layer i.
func (sp *SoilProfile) Layer(i int) Layer { return sp.layers[i].clone() }

// Layers returns deep copies of all layers in depth order.
func (sp *SoilProfile) Layers() []Layer {
	out := make([]Layer, 0, len(sp.layers))
	for _, l := range sp.layers {
		out = append(out, l.clone())
	}
	return out
}

// MinDepth returns the top of the profile.
func (sp *SoilProfile) MinDepth() float64 { return sp.layers[0].DepthFrom }

// MaxDepth returns the bottom of the profile.
func (sp *SoilProfile) MaxDepth() float64 { return sp.layers[len(sp.layers)-1].DepthTo }

// Diagnostics exposes the profile's warning collector.
func (sp *SoilProfile) Diagnostics() *Diagnostics { return &sp.diag }

// SetLogger mirrors subsequent warnings to l.
func (sp *SoilProfile) SetLogger(l *log.Logger) { sp.diag.SetLogger(l) }

// LayerTransitions returns the interior layer boundaries in depth order,
// optionally including the profile top and bottom.
func (sp *SoilProfile) LayerTransitions(includeTop, includeBottom bool) []float64 {
	var out []float64
	if includeTop {
		out = append(out, sp.MinDepth())
	}
	for _, l := range sp.layers[1:] {
		out = append(out, l.DepthFrom)
	}
	if includeBottom {
		out = append(out, sp.MaxDepth())
	}
	return out
}

// LayerThicknesses returns per-layer thickness in depth order.
func (sp *SoilProfile) LayerThicknesses() []float64 {
	out := make([]float64, len(sp.layers))
	for i, l := range sp.layers {
		out[i] = l.Thickness()
	}
	return out
}

// LayerCenters returns per-layer center depth in depth order.
func (sp *SoilProfile) LayerCenters() []float64 {
	out := make([]float64, len(sp.layers))
	for i, l := range sp.layers {
		out[i] = l.Center()
	}
	return out
}

// NumericalParameters returns the numeric parameter display names. When
// condenseLinear is true a linearly varying parameter appears once under its
// semantic name; otherwise its raw from/to column names are listed.
func (sp *SoilProfile) NumericalParameters(condenseLinear bool) []string {
	var out []string
	for _, name := range sp.numericOrder {
		if condenseLinear || !sp.isLinearName(name) {
			out = append(out, name.String())
		} else {
			out = append(out, name.FromColumn(), name.ToColumn())
		}
	}
	return out
}

// StringParameters returns the string parameter names in column order.
func (sp *SoilProfile) StringParameters() []string {
	return append([]string(nil), sp.stringOrder...)
}

// Parameters returns all parameter names, numeric first, then strings.
func (sp *SoilProfile) Parameters(condenseLinear bool) []string {
	return append(sp.NumericalParameters(condenseLinear), sp.StringParameters()...)
}

// IsLinear reports whether the named numeric parameter varies linearly
// across layers.
func (sp *SoilProfile) IsLinear(name string) (bool, error) {
	pn, err := sp.numericName(name)
	if err != nil {
		return false, err
	}
	return sp.isLinearName(pn), nil
}

// HasParameter reports whether name is a numeric or string parameter of the
// profile.
func (sp *SoilProfile) HasParameter(name string) bool {
	if _, err := sp.numericName(name); err == nil {
		return true
	}
	return sp.hasString(name)
}

// ParameterAtDepth returns the value of a numeric parameter at the given
// depth. Linearly varying parameters are interpolated inside the owning
// layer. At a boundary shared by two layers, tie selects the shallower
// (default) or deeper layer.
func (sp *SoilProfile) ParameterAtDepth(depth float64, name string, tie TieBreak) (float64, error) {
	pn, err := sp.numericName(name)
	if err != nil {
		return 0, err
	}
	layer, err := sp.layerAtDepth(depth, tie)
	if err != nil {
		return 0, err
	}
	return layer.Numerics[pn].At(depth, layer.DepthFrom, layer.DepthTo), nil
}

// StringAtDepth returns the value of a string parameter at the given depth,
// with the same boundary tie-break as ParameterAtDepth.
func (sp *SoilProfile) StringAtDepth(depth float64, name string, tie TieBreak) (string, error) {
	if !sp.hasString(name) {
		return "", fmt.Errorf("%w: %q not in string parameters %v",
			ErrUnknownParameter, name, sp.stringOrder)
	}
	layer, err := sp.layerAtDepth(depth, tie)
	if err != nil {
		return "", err
	}
	return layer.Strings[name], nil
}

// ParameterAtCenter returns the per-layer value at each layer center for a
// linearly varying parameter.
func (sp *SoilProfile) ParameterAtCenter(name string) ([]float64, error) {
	pn, err := sp.numericName(name)
	if err != nil {
		return nil, err
	}
	if !sp.isLinearName(pn) {
		return nil, fmt.Errorf("%w: %q", ErrNotLinear, name)
	}
	out := make([]float64, len(sp.layers))
	for i, l := range sp.layers {
		out[i] = l.Numerics[pn].Mid()
	}
	return out, nil
}

// layerAtDepth returns the layer owning the given depth, resolving boundary
// ties per tie. The returned layer aliases internal storage; callers must
// not retain it across mutations.
func (sp *SoilProfile) layerAtDepth(depth float64, tie TieBreak) (*Layer, error) {
	if depth < sp.MinDepth() || depth > sp.MaxDepth() {
		return nil, fmt.Errorf("%w: %v outside [%v, %v]",
			ErrDepthOutOfRange, depth, sp.MinDepth(), sp.MaxDepth())
	}
	idx := -1
	for i := range sp.layers {
		if sp.layers[i].contains(depth) {
			idx = i
			if tie == TieShallowest {
				break
			}
		}
	}
	return &sp.layers[idx], nil
}

// hasTransition reports whether depth coincides with a layer boundary,
// including the profile top and bottom.
func (sp *SoilProfile) hasTransition(depth float64) bool {
	for _, t := range sp.LayerTransitions(true, true) {
		if t == depth {
			return true
		}
	}
	return false
}

// numericName resolves a display name against the profile's numeric
// parameters.
func (sp *SoilProfile) numericName(name string) (params.Name, error) {
	pn, err := params.ParseName(name)
	if err != nil {
		return params.Name{}, fmt.Errorf("%w: %v", ErrUnknownParameter, err)
	}
	if len(sp.layers) == 0 {
		return params.Name{}, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	if _, ok := sp.layers[0].Numerics[pn]; !ok {
		return params.Name{}, fmt.Errorf("%w: %q not in numerical parameters %v",
			ErrUnknownParameter, name, sp.NumericalParameters(true))
	}
	return pn, nil
}

func (sp *SoilProfile) hasString(name string) bool {
	if len(sp.layers) == 0 {
		return false
	}
	_, ok := sp.layers[0].Strings[name]
	return ok
}

func (sp *SoilProfile) isLinearName(name params.Name) bool {
	return sp.layers[0].Numerics[name].IsLinear()
}

// setNumeric stores a value for name on layer i, registering the column the
// first time the name appears.
func (sp *SoilProfile) setNumeric(i int, name params.Name, v params.Value) {
	if sp.layers[i].Numerics == nil {
		sp.layers[i].Numerics = make(map[params.Name]params.Value)
	}
	if _, known := sp.layers[0].Numerics[name]; !known {
		if i == 0 {
			sp.numericOrder = append(sp.numericOrder, name)
		}
	}
	sp.layers[i].Numerics[name] = v
}

// rebuildOrder derives the parameter ordering from the first layer. Used by
// constructors that receive layers directly; FromRecords sets the ordering
// from the input columns instead.
func (sp *SoilProfile) rebuildOrder() {
	sp.numericOrder = sp.numericOrder[:0]
	sp.stringOrder = sp.stringOrder[:0]
	if len(sp.layers) == 0 {
		return
	}
	for name := range sp.layers[0].Numerics {
		sp.numericOrder = append(sp.numericOrder, name)
	}
	sortNames(sp.numericOrder)
	for label := range sp.layers[0].Strings {
		sp.stringOrder = append(sp.stringOrder, label)
	}
	sortStrings(sp.stringOrder)
}
