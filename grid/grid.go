// Package grid derives discretised calculation grids from layered soil
// profiles. A Grid holds a node table (the profile mapped onto a depth
// sequence) and an element table (segments between adjacent nodes with top,
// bottom and center property values) for finite-difference and
// numerical-integration consumers.
//
// A Grid takes an independent snapshot of the source profile at
// construction; it never observes later edits and must be rebuilt when the
// profile changes.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/strataworks/stratum/params"
	"github.com/strataworks/stratum/soilprofile"
)

// Config configures grid construction.
type Config struct {
	// DZ is the node spacing; ceil(1 + span/DZ) evenly spaced nodes cover
	// the profile. Ignored when CustomNodes is set.
	DZ float64

	// CustomNodes replaces the generated node sequence. Must be strictly
	// ascending and inside the profile bounds.
	CustomNodes []float64

	// IncludeLayerTransitions unions the profile's interior transitions
	// into the node sequence, so no element straddles a layer boundary.
	IncludeLayerTransitions bool
}

// DefaultConfig returns a Config with the given node spacing and layer
// transitions included.
func DefaultConfig(dz float64) Config {
	return Config{DZ: dz, IncludeLayerTransitions: true}
}

// Element is a segment between two adjacent nodes. Values holds one value
// per numeric parameter: the layer value for constant parameters and the
// value at the element center for linearly varying ones. ValuesFrom and
// ValuesTo additionally hold the top and bottom values of linearly varying
// parameters.
type Element struct {
	DepthFrom   float64
	DepthTo     float64
	DepthCenter float64
	Thickness   float64

	Values     map[string]float64
	ValuesFrom map[string]float64
	ValuesTo   map[string]float64
	Strings    map[string]string
}

// Grid is a built calculation grid. Nodes is the per-node property table,
// Elements the derived per-segment table.
type Grid struct {
	Nodes    *soilprofile.Mapping
	Elements []Element

	snapshot *soilprofile.SoilProfile
}

// New builds a grid from a profile. The profile is snapshotted: element
// values are re-queried from the snapshot rather than re-interpolated from
// the discretised node values, so no double approximation occurs, and later
// edits to sp do not affect the grid.
func New(sp *soilprofile.SoilProfile, cfg Config) (*Grid, error) {
	nodes := cfg.CustomNodes
	if nodes == nil {
		if cfg.DZ <= 0 {
			return nil, fmt.Errorf("node spacing must be positive, got %v", cfg.DZ)
		}
		n := int(math.Ceil(1 + (sp.MaxDepth()-sp.MinDepth())/cfg.DZ))
		nodes = floats.Span(make([]float64, n), sp.MinDepth(), sp.MaxDepth())
	}

	snapshot := sp.Clone()
	mapped, err := snapshot.Map(nodes, soilprofile.MapOptions{
		IncludeLayerTransitions: cfg.IncludeLayerTransitions,
	})
	if err != nil {
		return nil, err
	}

	g := &Grid{Nodes: mapped, snapshot: snapshot}
	if err := g.buildElements(); err != nil {
		return nil, err
	}
	return g, nil
}

// buildElements pairs consecutive nodes into elements and assigns property
// values from the snapshot profile. The layer owning an element is the
// deepest layer containing its center; linearly varying parameters are
// interpolated inside that layer at the element top, bottom and center.
func (g *Grid) buildElements() error {
	layers := g.snapshot.Layers()
	type numericCol struct {
		display string
		name    params.Name
		linear  bool
	}
	var numeric []numericCol
	for _, display := range g.snapshot.NumericalParameters(true) {
		name, err := params.ParseName(display)
		if err != nil {
			return err
		}
		linear, err := g.snapshot.IsLinear(display)
		if err != nil {
			return err
		}
		numeric = append(numeric, numericCol{display: display, name: name, linear: linear})
	}
	stringKeys := g.snapshot.StringParameters()

	depths := g.Nodes.Depths
	g.Elements = make([]Element, 0, len(depths)-1)
	for i := 0; i+1 < len(depths); i++ {
		el := Element{
			DepthFrom:   depths[i],
			DepthTo:     depths[i+1],
			DepthCenter: 0.5 * (depths[i] + depths[i+1]),
			Thickness:   depths[i+1] - depths[i],
			Values:      make(map[string]float64, len(numeric)),
			Strings:     make(map[string]string, len(stringKeys)),
		}

		owner := layers[0]
		for _, l := range layers {
			if l.DepthFrom <= el.DepthCenter && el.DepthCenter <= l.DepthTo {
				owner = l
			}
		}

		for _, col := range numeric {
			v := owner.Numerics[col.name]
			if col.linear {
				if el.ValuesFrom == nil {
					el.ValuesFrom = make(map[string]float64, len(numeric))
					el.ValuesTo = make(map[string]float64, len(numeric))
				}
				el.ValuesFrom[col.display] = v.At(el.DepthFrom, owner.DepthFrom, owner.DepthTo)
				el.ValuesTo[col.display] = v.At(el.DepthTo, owner.DepthFrom, owner.DepthTo)
				el.Values[col.display] = v.At(el.DepthCenter, owner.DepthFrom, owner.DepthTo)
			} else {
				el.Values[col.display] = v.Constant()
			}
		}
		for _, key := range stringKeys {
			el.Strings[key] = owner.Strings[key]
		}
		g.Elements = append(g.Elements, el)
	}
	return nil
}

// Profile returns an independent copy of the profile snapshot the grid was
// built from.
func (g *Grid) Profile() *soilprofile.SoilProfile {
	return g.snapshot.Clone()
}

// ParameterSeries returns interleaved depth/value series over the elements
// for plotting a numeric parameter: element top then bottom values, with
// linearly varying parameters using their interpolated end values unless
// ignoreLinear is set, in which case the center value is repeated.
func (g *Grid) ParameterSeries(name string, ignoreLinear bool) (depths, values []float64, err error) {
	linear, err := g.snapshot.IsLinear(name)
	if err != nil {
		return nil, nil, err
	}
	depths = make([]float64, 0, 2*len(g.Elements))
	values = make([]float64, 0, 2*len(g.Elements))
	for _, el := range g.Elements {
		depths = append(depths, el.DepthFrom, el.DepthTo)
		if linear && !ignoreLinear {
			values = append(values, el.ValuesFrom[name], el.ValuesTo[name])
		} else {
			values = append(values, el.Values[name], el.Values[name])
		}
	}
	return depths, values, nil
}
