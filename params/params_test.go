package params

import (
	"math"
	"testing"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		in        string
		wantLabel string
		wantUnit  string
		wantErr   bool
	}{
		{"Total unit weight [kN/m3]", "Total unit weight", "kN/m3", false},
		{"qc [MPa]", "qc", "MPa", false},
		{"Ic [-]", "Ic", "-", false},
		{"Soil type", "", "", true},
		{"Depth", "", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseName(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseName(%q) expected error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseName(%q): %v", tc.in, err)
			}
			if got.Label != tc.wantLabel || got.Unit != tc.wantUnit {
				t.Errorf("ParseName(%q) = %v, want {%s %s}", tc.in, got, tc.wantLabel, tc.wantUnit)
			}
		})
	}
}

func TestNameColumns(t *testing.T) {
	n := Name{Label: "Su", Unit: "kPa"}
	if n.String() != "Su [kPa]" {
		t.Errorf("String() = %q", n.String())
	}
	if n.FromColumn() != "Su from [kPa]" {
		t.Errorf("FromColumn() = %q", n.FromColumn())
	}
	if n.ToColumn() != "Su to [kPa]" {
		t.Errorf("ToColumn() = %q", n.ToColumn())
	}
}

func TestClassifyColumn(t *testing.T) {
	tests := []struct {
		col       string
		wantLabel string
		wantRole  Role
	}{
		{"Soil type", "Soil type", RoleString},
		{"Total unit weight [kN/m3]", "Total unit weight", RoleConstant},
		{"Su from [kPa]", "Su", RoleFrom},
		{"Su to [kPa]", "Su", RoleTo},
		{"Depth from [m]", "Depth", RoleFrom},
	}
	for _, tc := range tests {
		t.Run(tc.col, func(t *testing.T) {
			name, role := ClassifyColumn(tc.col)
			if name.Label != tc.wantLabel {
				t.Errorf("label = %q, want %q", name.Label, tc.wantLabel)
			}
			if role != tc.wantRole {
				t.Errorf("role = %v, want %v", role, tc.wantRole)
			}
		})
	}
}

func TestValueAt(t *testing.T) {
	lin := Linear(4, 8)
	tests := []struct {
		z    float64
		want float64
	}{
		{1, 4},    // layer top
		{3, 6},    // mid
		{5, 8},    // layer bottom
		{0, 4},    // clamped above
		{9, 8},    // clamped below
		{2, 5},    // quarter point
	}
	for _, tc := range tests {
		if got := lin.At(tc.z, 1, 5); got != tc.want {
			t.Errorf("At(%v) = %v, want %v", tc.z, got, tc.want)
		}
	}

	if got := Constant(3).At(99, 1, 5); got != 3 {
		t.Errorf("constant At = %v, want 3", got)
	}
}

func TestValueReduce(t *testing.T) {
	v := Linear(2, 6)
	if got := v.Reduce(RuleMin); got != 2 {
		t.Errorf("min = %v", got)
	}
	if got := v.Reduce(RuleMean); got != 4 {
		t.Errorf("mean = %v", got)
	}
	if got := v.Reduce(RuleMax); got != 6 {
		t.Errorf("max = %v", got)
	}
}

func TestValueHasNaN(t *testing.T) {
	if Constant(1).HasNaN() {
		t.Error("Constant(1) reported NaN")
	}
	if !Constant(math.NaN()).HasNaN() {
		t.Error("Constant(NaN) not reported")
	}
	if !Linear(1, math.NaN()).HasNaN() {
		t.Error("Linear(1, NaN) not reported")
	}
}
