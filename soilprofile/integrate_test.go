package soilprofile

import (
	"errors"
	"math"
	"testing"

	"github.com/strataworks/stratum/internal/testutil"
	"github.com/strataworks/stratum/params"
)

func TestDepthIntegration(t *testing.T) {
	sp := fourLayerProfile(t)

	err := sp.DepthIntegration("Total unit weight [kN/m3]", "Total vertical stress [kPa]", 0)
	testutil.AssertNoError(t, err)

	// Unit weights 9, 8, 7, 10 over thicknesses 1, 4, 5, 10.
	name := params.Name{Label: "Total vertical stress", Unit: "kPa"}
	wantFrom := []float64{0, 9, 41, 76}
	wantTo := []float64{9, 41, 76, 176}
	for i := 0; i < sp.NumLayers(); i++ {
		from, to := sp.Layer(i).Numerics[name].Bounds()
		if from != wantFrom[i] || to != wantTo[i] {
			t.Errorf("layer %d: stress [%v, %v], want [%v, %v]", i, from, to, wantFrom[i], wantTo[i])
		}
	}

	// Continuity holds exactly by construction.
	for i := 0; i+1 < sp.NumLayers(); i++ {
		_, to := sp.Layer(i).Numerics[name].Bounds()
		from, _ := sp.Layer(i + 1).Numerics[name].Bounds()
		if to != from {
			t.Errorf("discontinuity between layers %d and %d: %v != %v", i, i+1, to, from)
		}
	}

	if linear, _ := sp.IsLinear("Total vertical stress [kPa]"); !linear {
		t.Error("integrated output should vary linearly")
	}
	testutil.AssertNoError(t, sp.Validate())
}

func TestDepthIntegrationStartValue(t *testing.T) {
	sp := fourLayerProfile(t)
	err := sp.DepthIntegration("Total unit weight [kN/m3]", "Total vertical stress [kPa]", 25)
	testutil.AssertNoError(t, err)

	got, err := sp.ParameterAtDepth(0, "Total vertical stress [kPa]", TieShallowest)
	testutil.AssertNoError(t, err)
	testutil.AssertInDelta(t, got, 25, 0)
	got, err = sp.ParameterAtDepth(20, "Total vertical stress [kPa]", TieShallowest)
	testutil.AssertNoError(t, err)
	testutil.AssertInDelta(t, got, 201, 1e-9)
}

func TestDepthIntegrationErrors(t *testing.T) {
	sp := fourLayerProfile(t)

	err := sp.DepthIntegration("Su [kPa]", "Integrated Su [kPa.m]", 0)
	if !errors.Is(err, ErrNotConstant) {
		t.Errorf("linear integrand error = %v, want ErrNotConstant", err)
	}
	err = sp.DepthIntegration("Cohesion [kPa]", "Stress [kPa]", 0)
	if !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("unknown integrand error = %v", err)
	}
	err = sp.DepthIntegration("Total unit weight [kN/m3]", "no unit suffix", 0)
	if err == nil {
		t.Error("malformed output name accepted")
	}
}

func TestDepthIntegrationNaN(t *testing.T) {
	sp, err := FromRecords([]Record{
		{"Depth from [m]": 0.0, "Depth to [m]": 2.0, "Total unit weight [kN/m3]": 18.0},
		{"Depth from [m]": 2.0, "Depth to [m]": 5.0, "Total unit weight [kN/m3]": math.NaN()},
	}, RecordOptions{})
	testutil.AssertNoError(t, err)

	err = sp.DepthIntegration("Total unit weight [kN/m3]", "Vertical total stress [kPa]", 0)
	if !errors.Is(err, ErrNaNInIntegrand) {
		t.Errorf("NaN integrand error = %v, want ErrNaNInIntegrand", err)
	}
	// Validate-then-commit: the failed call added nothing.
	if sp.HasParameter("Vertical total stress [kPa]") {
		t.Error("failed integration left a partial output column")
	}
}

func TestCalculateOverburden(t *testing.T) {
	sp, err := FromRecords([]Record{
		{"Depth from [m]": 0.0, "Depth to [m]": 10.0, "Total unit weight [kN/m3]": 20.0},
	}, RecordOptions{})
	testutil.AssertNoError(t, err)

	cfg := DefaultOverburdenConfig()
	cfg.WaterLevel = 4
	testutil.AssertNoError(t, sp.CalculateOverburden(cfg))

	// The water table became a layer transition.
	testutil.AssertFloatsEqual(t, sp.LayerTransitions(false, false), []float64{4}, 0)

	checks := []struct {
		param string
		depth float64
		want  float64
	}{
		{"Hydrostatic pressure [kPa]", 0, 0},
		{"Hydrostatic pressure [kPa]", 4, 0},
		{"Hydrostatic pressure [kPa]", 10, 60},
		{"Vertical total stress [kPa]", 4, 80},
		{"Vertical total stress [kPa]", 10, 200},
		{"Vertical effective stress [kPa]", 4, 80},
		{"Vertical effective stress [kPa]", 10, 140},
	}
	for _, tc := range checks {
		got, err := sp.ParameterAtDepth(tc.depth, tc.param, TieShallowest)
		testutil.AssertNoError(t, err)
		testutil.AssertInDelta(t, got, tc.want, 1e-9)
	}

	// sigma_v == sigma_v' + u at the profile bottom.
	total, _ := sp.ParameterAtDepth(10, "Vertical total stress [kPa]", TieShallowest)
	eff, _ := sp.ParameterAtDepth(10, "Vertical effective stress [kPa]", TieShallowest)
	u, _ := sp.ParameterAtDepth(10, "Hydrostatic pressure [kPa]", TieShallowest)
	testutil.AssertInDelta(t, total, eff+u, 1e-9)
}

func TestCalculateOverburdenClampsWaterLevel(t *testing.T) {
	t.Run("water level above profile", func(t *testing.T) {
		sp, err := FromRecords([]Record{
			{"Depth from [m]": 0.0, "Depth to [m]": 5.0, "Total unit weight [kN/m3]": 20.0},
		}, RecordOptions{})
		testutil.AssertNoError(t, err)

		cfg := DefaultOverburdenConfig()
		cfg.WaterLevel = -3
		testutil.AssertNoError(t, sp.CalculateOverburden(cfg))

		// Fully submerged: effective stress grows at 10 kN/m3.
		eff, err := sp.ParameterAtDepth(5, "Vertical effective stress [kPa]", TieShallowest)
		testutil.AssertNoError(t, err)
		testutil.AssertInDelta(t, eff, 50, 1e-9)
	})

	t.Run("water level below profile", func(t *testing.T) {
		sp, err := FromRecords([]Record{
			{"Depth from [m]": 0.0, "Depth to [m]": 5.0, "Total unit weight [kN/m3]": 20.0},
		}, RecordOptions{})
		testutil.AssertNoError(t, err)

		cfg := DefaultOverburdenConfig()
		cfg.WaterLevel = 50
		testutil.AssertNoError(t, sp.CalculateOverburden(cfg))

		// Fully dry: effective equals total, hydrostatic is zero.
		u, err := sp.ParameterAtDepth(5, "Hydrostatic pressure [kPa]", TieShallowest)
		testutil.AssertNoError(t, err)
		testutil.AssertInDelta(t, u, 0, 0)
		eff, err := sp.ParameterAtDepth(5, "Vertical effective stress [kPa]", TieShallowest)
		testutil.AssertNoError(t, err)
		testutil.AssertInDelta(t, eff, 100, 1e-9)
	})
}

func TestCalculateOverburdenWaterLevelOnTransition(t *testing.T) {
	sp, err := FromRecords([]Record{
		{"Depth from [m]": 0.0, "Depth to [m]": 4.0, "Total unit weight [kN/m3]": 18.0},
		{"Depth from [m]": 4.0, "Depth to [m]": 10.0, "Total unit weight [kN/m3]": 20.0},
	}, RecordOptions{})
	testutil.AssertNoError(t, err)

	cfg := DefaultOverburdenConfig()
	cfg.WaterLevel = 4
	testutil.AssertNoError(t, sp.CalculateOverburden(cfg))

	// The existing boundary serves as the water table; no insertion
	// happens and no advisory is recorded.
	if n := len(sp.Diagnostics().Warnings()); n != 0 {
		t.Errorf("got %d warnings, want none: %v", n, sp.Diagnostics().Warnings())
	}
	testutil.AssertFloatsEqual(t, sp.LayerTransitions(false, false), []float64{4}, 0)

	u, err := sp.ParameterAtDepth(10, "Hydrostatic pressure [kPa]", TieShallowest)
	testutil.AssertNoError(t, err)
	testutil.AssertInDelta(t, u, 60, 1e-9)
	eff, err := sp.ParameterAtDepth(10, "Vertical effective stress [kPa]", TieShallowest)
	testutil.AssertNoError(t, err)
	testutil.AssertInDelta(t, eff, 132, 1e-9)
}

func TestCalculateOverburdenRequiresConstantUnitWeight(t *testing.T) {
	sp, err := FromRecords([]Record{
		{"Depth from [m]": 0.0, "Depth to [m]": 5.0,
			"Total unit weight from [kN/m3]": 18.0, "Total unit weight to [kN/m3]": 20.0},
	}, RecordOptions{})
	testutil.AssertNoError(t, err)

	err = sp.CalculateOverburden(DefaultOverburdenConfig())
	if !errors.Is(err, ErrNotConstant) {
		t.Errorf("linear unit weight error = %v, want ErrNotConstant", err)
	}
}
