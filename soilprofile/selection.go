package soilprofile

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/strataworks/stratum/params"
)

// SelectParameter derives a soil parameter for every layer from measured
// values at discrete depths (e.g. lab tests or in-situ readings). Samples
// falling inside a layer are reduced to a constant with the given rule, or,
// when linearVariation is set, to a linear trend over the layer fitted by
// least squares. RuleMin and RuleMax pick the conservative trend through the two
// samples with the most negative respectively most positive residuals.
// Layers without samples get NaN; NaN sample values are ignored.
func (sp *SoilProfile) SelectParameter(name string, depths, values []float64, rule params.Rule, linearVariation bool) error {
	if len(depths) != len(values) {
		return fmt.Errorf("depths (%d) and values (%d) must be of equal length",
			len(depths), len(values))
	}
	outName, err := params.ParseName(name)
	if err != nil {
		return err
	}

	results := make([]params.Value, len(sp.layers))
	for i, l := range sp.layers {
		var zs, xs []float64
		for k, d := range depths {
			if l.DepthFrom <= d && d <= l.DepthTo && !math.IsNaN(values[k]) {
				zs = append(zs, d)
				xs = append(xs, values[k])
			}
		}
		switch {
		case len(xs) == 0:
			if linearVariation {
				results[i] = params.Linear(math.NaN(), math.NaN())
			} else {
				results[i] = params.Constant(math.NaN())
			}
		case len(xs) == 1:
			if linearVariation {
				results[i] = params.Linear(xs[0], xs[0])
			} else {
				results[i] = params.Constant(xs[0])
			}
		default:
			if linearVariation {
				results[i] = selectTrend(l, zs, xs, rule)
			} else {
				switch rule {
				case params.RuleMin:
					results[i] = params.Constant(floats.Min(xs))
				case params.RuleMax:
					results[i] = params.Constant(floats.Max(xs))
				default:
					results[i] = params.Constant(stat.Mean(xs, nil))
				}
			}
		}
	}

	for i := range sp.layers {
		sp.setNumeric(i, outName, results[i])
	}
	return nil
}

// selectTrend fits a linear trend through the in-layer samples and
// evaluates it at the layer bounds. The min/max rules shift to the line
// through the two samples with the smallest respectively largest residuals.
func selectTrend(l Layer, zs, xs []float64, rule params.Rule) params.Value {
	alpha, beta := stat.LinearRegression(zs, xs, nil, false)

	if rule == params.RuleMean {
		return params.Linear(alpha+beta*l.DepthFrom, alpha+beta*l.DepthTo)
	}

	residuals := make([]float64, len(xs))
	for i := range xs {
		residuals[i] = xs[i] - (alpha + beta*zs[i])
	}
	sorted := append([]float64(nil), residuals...)
	sort.Float64s(sorted)

	var pz, px []float64
	for i, r := range residuals {
		switch rule {
		case params.RuleMin:
			if r <= sorted[1] {
				pz = append(pz, zs[i])
				px = append(px, xs[i])
			}
		case params.RuleMax:
			if r >= sorted[len(sorted)-2] {
				pz = append(pz, zs[i])
				px = append(px, xs[i])
			}
		}
	}
	if len(pz) < 2 || pz[1] == pz[0] {
		// Degenerate picks (coincident depths): fall back to the fitted
		// trend.
		return params.Linear(alpha+beta*l.DepthFrom, alpha+beta*l.DepthTo)
	}
	slope := (px[1] - px[0]) / (pz[1] - pz[0])
	return params.Linear(
		px[0]+slope*(l.DepthFrom-pz[0]),
		px[0]+slope*(l.DepthTo-pz[0]),
	)
}

// ApplyFunction evaluates fn against a numeric parameter in every layer,
// storing the result as a new parameter. For linearly varying parameters fn
// is applied to the from and to values separately, producing a linearly
// varying output.
func (sp *SoilProfile) ApplyFunction(fn func(float64) float64, parameter, outputParameter string) error {
	pn, err := sp.numericName(parameter)
	if err != nil {
		return err
	}
	outName, err := params.ParseName(outputParameter)
	if err != nil {
		return err
	}
	linear := sp.isLinearName(pn)
	for i := range sp.layers {
		v := sp.layers[i].Numerics[pn]
		if linear {
			from, to := v.Bounds()
			sp.setNumeric(i, outName, params.Linear(fn(from), fn(to)))
		} else {
			sp.setNumeric(i, outName, params.Constant(fn(v.Constant())))
		}
	}
	return nil
}
