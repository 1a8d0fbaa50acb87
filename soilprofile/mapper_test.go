package soilprofile

import (
	"errors"
	"testing"

	"github.com/strataworks/stratum/internal/testutil"
)

func TestParameterSeries(t *testing.T) {
	sp := fourLayerProfile(t)

	depths, values, err := sp.ParameterSeries("Su [kPa]")
	testutil.AssertNoError(t, err)
	testutil.AssertFloatsEqual(t, depths, []float64{0, 1, 1, 5, 5, 10, 10, 20}, 0)
	testutil.AssertFloatsEqual(t, values, []float64{10, 20, 20, 60, 60, 110, 110, 210}, 0)

	// A constant parameter repeats its value at both layer ends.
	depths, values, err = sp.ParameterSeries("Total unit weight [kN/m3]")
	testutil.AssertNoError(t, err)
	testutil.AssertFloatsEqual(t, depths, []float64{0, 1, 1, 5, 5, 10, 10, 20}, 0)
	testutil.AssertFloatsEqual(t, values, []float64{9, 9, 8, 8, 7, 7, 10, 10}, 0)

	if _, _, err := sp.ParameterSeries("Cohesion [kPa]"); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("unknown parameter error = %v", err)
	}
}

func TestMapBasic(t *testing.T) {
	sp := fourLayerProfile(t)

	m, err := sp.Map([]float64{0, 2, 4, 8, 16, 20}, MapOptions{})
	testutil.AssertNoError(t, err)

	if m.DepthKey != "z [m]" {
		t.Errorf("DepthKey = %q, want %q", m.DepthKey, "z [m]")
	}
	testutil.AssertFloatsEqual(t, m.Depths, []float64{0, 2, 4, 8, 16, 20}, 0)
	testutil.AssertFloatsEqual(t, m.Numeric["Su [kPa]"], []float64{10, 30, 50, 90, 170, 210}, 1e-9)
	testutil.AssertFloatsEqual(t, m.Numeric["Total unit weight [kN/m3]"], []float64{9, 8, 8, 7, 10, 10}, 0)

	wantSoil := []string{"SAND", "SILT", "SILT", "CLAY", "SAND", "SAND"}
	for i, want := range wantSoil {
		if m.Strings["Soil type"][i] != want {
			t.Errorf("Soil type[%d] = %q, want %q", i, m.Strings["Soil type"][i], want)
		}
	}
}

// Nodes exactly on a layer boundary take the deeper layer for constant and
// string parameters; this deliberately differs from ParameterAtDepth's
// shallowest default.
func TestMapBoundaryTakesDeeperLayer(t *testing.T) {
	sp := fourLayerProfile(t)

	m, err := sp.Map([]float64{1, 5, 10}, MapOptions{})
	testutil.AssertNoError(t, err)

	testutil.AssertFloatsEqual(t, m.Numeric["Total unit weight [kN/m3]"], []float64{8, 7, 10}, 0)
	wantSoil := []string{"SILT", "CLAY", "SAND"}
	for i, want := range wantSoil {
		if m.Strings["Soil type"][i] != want {
			t.Errorf("Soil type[%d] = %q, want %q", i, m.Strings["Soil type"][i], want)
		}
	}
}

// Mapping at the profile's own transitions reproduces the stored boundary
// values for every parameter.
func TestMapRoundTripAtTransitions(t *testing.T) {
	sp := fourLayerProfile(t)

	nodes := sp.LayerTransitions(true, true)
	m, err := sp.Map(nodes, MapOptions{})
	testutil.AssertNoError(t, err)

	testutil.AssertFloatsEqual(t, m.Numeric["Su [kPa]"], []float64{10, 20, 60, 110, 210}, 1e-9)
	testutil.AssertFloatsEqual(t, m.Numeric["Total unit weight [kN/m3]"], []float64{9, 8, 7, 10, 10}, 0)
}

// A flat linear parameter maps to its value exactly, regardless of the
// neighbouring layers' values.
func TestMapFlatLinearSegment(t *testing.T) {
	sp, err := FromRecords([]Record{
		{"Depth from [m]": 0.0, "Depth to [m]": 1.0, "Su from [kPa]": 100.0, "Su to [kPa]": 200.0},
		{"Depth from [m]": 1.0, "Depth to [m]": 5.0, "Su from [kPa]": 3.0, "Su to [kPa]": 3.0},
		{"Depth from [m]": 5.0, "Depth to [m]": 8.0, "Su from [kPa]": 50.0, "Su to [kPa]": 60.0},
	}, RecordOptions{})
	testutil.AssertNoError(t, err)

	m, err := sp.Map([]float64{2}, MapOptions{})
	testutil.AssertNoError(t, err)
	if got := m.Numeric["Su [kPa]"][0]; got != 3 {
		t.Errorf("Su at 2m = %v, want exactly 3", got)
	}
}

func TestMapIncludeLayerTransitions(t *testing.T) {
	sp := fourLayerProfile(t)

	m, err := sp.Map([]float64{0, 7.5, 20}, MapOptions{IncludeLayerTransitions: true})
	testutil.AssertNoError(t, err)
	testutil.AssertFloatsEqual(t, m.Depths, []float64{0, 1, 5, 7.5, 10, 20}, 0)

	// A node coinciding with a transition is not duplicated.
	m, err = sp.Map([]float64{0, 5, 20}, MapOptions{IncludeLayerTransitions: true})
	testutil.AssertNoError(t, err)
	testutil.AssertFloatsEqual(t, m.Depths, []float64{0, 1, 5, 10, 20}, 0)
}

func TestMapKeysToMap(t *testing.T) {
	sp := fourLayerProfile(t)

	m, err := sp.Map([]float64{0, 10}, MapOptions{KeysToMap: []string{"Soil type", "Su [kPa]"}})
	testutil.AssertNoError(t, err)
	if _, ok := m.Numeric["Total unit weight [kN/m3]"]; ok {
		t.Error("unrequested column was mapped")
	}
	if len(m.Numeric) != 1 || len(m.Strings) != 1 {
		t.Errorf("mapped %d numeric and %d string columns, want 1 and 1",
			len(m.Numeric), len(m.Strings))
	}

	_, err = sp.Map([]float64{0, 10}, MapOptions{KeysToMap: []string{"Cohesion [kPa]"}})
	if !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("unknown key error = %v", err)
	}
}

func TestMapDepthPostprocessing(t *testing.T) {
	sp := fourLayerProfile(t)

	m, err := sp.Map([]float64{0, 10, 20}, MapOptions{InvertSign: true, Offset: 5})
	testutil.AssertNoError(t, err)
	testutil.AssertFloatsEqual(t, m.Depths, []float64{5, -5, -15}, 0)

	// Parameter values are mapped against the original coordinates.
	testutil.AssertFloatsEqual(t, m.Numeric["Su [kPa]"], []float64{10, 110, 210}, 1e-9)
}

func TestMapValidation(t *testing.T) {
	sp := fourLayerProfile(t)

	_, err := sp.Map([]float64{0, 10, 25}, MapOptions{})
	if !errors.Is(err, ErrNodesOutOfRange) {
		t.Errorf("out-of-range error = %v", err)
	}
	_, err = sp.Map([]float64{-1, 10}, MapOptions{})
	if !errors.Is(err, ErrNodesOutOfRange) {
		t.Errorf("out-of-range error = %v", err)
	}
	_, err = sp.Map([]float64{0, 10, 10}, MapOptions{})
	if !errors.Is(err, ErrNodesNotAscending) {
		t.Errorf("duplicate nodes error = %v", err)
	}
	_, err = sp.Map([]float64{10, 5}, MapOptions{})
	if !errors.Is(err, ErrNodesNotAscending) {
		t.Errorf("descending nodes error = %v", err)
	}
	_, err = sp.Map(nil, MapOptions{})
	if !errors.Is(err, ErrNodesNotAscending) {
		t.Errorf("empty nodes error = %v", err)
	}
}
