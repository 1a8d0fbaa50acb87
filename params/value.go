package params

import "math"

// Kind distinguishes the two numeric value forms.
type Kind int

const (
	// KindConstant holds one value for the whole layer.
	KindConstant Kind = iota
	// KindLinear varies linearly from the layer top to the layer bottom.
	KindLinear
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Value is a tagged variant holding a numeric parameter value for one layer.
// The zero Value is a constant zero.
type Value struct {
	kind     Kind
	constant float64
	from, to float64
}

// Constant builds a constant-in-layer value.
func Constant(v float64) Value {
	return Value{kind: KindConstant, constant: v}
}

// Linear builds a value varying linearly from the layer top to the bottom.
func Linear(from, to float64) Value {
	return Value{kind: KindLinear, from: from, to: to}
}

// Kind returns the value form.
func (v Value) Kind() Kind { return v.kind }

// IsLinear reports whether the value varies across the layer.
func (v Value) IsLinear() bool { return v.kind == KindLinear }

// Constant returns the constant value. It panics for linear values; callers
// check Kind first.
func (v Value) Constant() float64 {
	if v.kind != KindConstant {
		panic("params: Constant called on linear value")
	}
	return v.constant
}

// Bounds returns the values at the layer top and bottom. For constant values
// both are the constant.
func (v Value) Bounds() (from, to float64) {
	if v.kind == KindConstant {
		return v.constant, v.constant
	}
	return v.from, v.to
}

// At interpolates the value at depth z inside a layer spanning
// [depthFrom, depthTo]. Depths outside the layer clamp to the nearest bound.
// Constant values ignore the depth.
func (v Value) At(z, depthFrom, depthTo float64) float64 {
	if v.kind == KindConstant {
		return v.constant
	}
	if z <= depthFrom || depthTo <= depthFrom {
		return v.from
	}
	if z >= depthTo {
		return v.to
	}
	t := (z - depthFrom) / (depthTo - depthFrom)
	return v.from + t*(v.to-v.from)
}

// Mid returns the value at the layer center.
func (v Value) Mid() float64 {
	if v.kind == KindConstant {
		return v.constant
	}
	return 0.5 * (v.from + v.to)
}

// Reduce collapses the value to a single float using the given rule.
func (v Value) Reduce(rule Rule) float64 {
	from, to := v.Bounds()
	switch rule {
	case RuleMin:
		return math.Min(from, to)
	case RuleMax:
		return math.Max(from, to)
	default:
		return 0.5 * (from + to)
	}
}

// HasNaN reports whether any component of the value is NaN.
func (v Value) HasNaN() bool {
	if v.kind == KindConstant {
		return math.IsNaN(v.constant)
	}
	return math.IsNaN(v.from) || math.IsNaN(v.to)
}

// Rule selects how a from/to pair is reduced to a single value.
type Rule int

const (
	// RuleMean takes the average of the from and to values.
	RuleMean Rule = iota
	// RuleMin takes the smaller of the two.
	RuleMin
	// RuleMax takes the larger of the two.
	RuleMax
)

func (r Rule) String() string {
	switch r {
	case RuleMin:
		return "min"
	case RuleMax:
		return "max"
	default:
		return "mean"
	}
}
