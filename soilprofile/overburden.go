package soilprofile

import (
	"fmt"

	"github.com/strataworks/stratum/params"
)

// OverburdenConfig configures CalculateOverburden. Zero-valued column names
// take the conventional defaults; a zero WaterUnitWeight takes 10 kN/m3.
type OverburdenConfig struct {
	// WaterLevel is the water table depth in the profile's depth
	// reference. Levels above the profile top or below the bottom are
	// clamped.
	WaterLevel float64

	// WaterUnitWeight is the pore water unit weight (default 10 kN/m3).
	// Use consistent units when the profile is not in kN/m3 and kPa.
	WaterUnitWeight float64

	// InitialTotalStress is added at the profile top, e.g. for a
	// surcharge.
	InitialTotalStress float64

	// Column names. TotalUnitWeight is the input; the others are outputs.
	TotalUnitWeight     string // default "Total unit weight [kN/m3]"
	EffectiveUnitWeight string // default "Effective unit weight [kN/m3]"
	WaterUnitWeightCol  string // default "Water unit weight [kN/m3]"
	TotalStress         string // default "Vertical total stress [kPa]"
	EffectiveStress     string // default "Vertical effective stress [kPa]"
	HydrostaticPressure string // default "Hydrostatic pressure [kPa]"
}

// DefaultOverburdenConfig returns the conventional configuration: water
// table at the profile top, 10 kN/m3 pore water, standard column names.
func DefaultOverburdenConfig() OverburdenConfig {
	return OverburdenConfig{
		WaterUnitWeight:     10,
		TotalUnitWeight:     "Total unit weight [kN/m3]",
		EffectiveUnitWeight: "Effective unit weight [kN/m3]",
		WaterUnitWeightCol:  "Water unit weight [kN/m3]",
		TotalStress:         "Vertical total stress [kPa]",
		EffectiveStress:     "Vertical effective stress [kPa]",
		HydrostaticPressure: "Hydrostatic pressure [kPa]",
	}
}

func (cfg *OverburdenConfig) applyDefaults() {
	def := DefaultOverburdenConfig()
	if cfg.WaterUnitWeight == 0 {
		cfg.WaterUnitWeight = def.WaterUnitWeight
	}
	if cfg.TotalUnitWeight == "" {
		cfg.TotalUnitWeight = def.TotalUnitWeight
	}
	if cfg.EffectiveUnitWeight == "" {
		cfg.EffectiveUnitWeight = def.EffectiveUnitWeight
	}
	if cfg.WaterUnitWeightCol == "" {
		cfg.WaterUnitWeightCol = def.WaterUnitWeightCol
	}
	if cfg.TotalStress == "" {
		cfg.TotalStress = def.TotalStress
	}
	if cfg.EffectiveStress == "" {
		cfg.EffectiveStress = def.EffectiveStress
	}
	if cfg.HydrostaticPressure == "" {
		cfg.HydrostaticPressure = def.HydrostaticPressure
	}
}

// CalculateOverburden computes hydrostatic pressure and total and effective
// vertical stress from a constant-per-layer total unit weight. A layer
// transition is inserted at the water level when it falls strictly inside
// the profile; layers are then dry or submerged depending on whether their
// center lies above or below the water level. Three depth integrations
// produce the output columns.
func (sp *SoilProfile) CalculateOverburden(cfg OverburdenConfig) error {
	cfg.applyDefaults()

	pn, err := sp.numericName(cfg.TotalUnitWeight)
	if err != nil {
		return err
	}
	if sp.isLinearName(pn) {
		return fmt.Errorf("%w: %q, use ConvertToConstant first",
			ErrNotConstant, cfg.TotalUnitWeight)
	}
	waterName, err := params.ParseName(cfg.WaterUnitWeightCol)
	if err != nil {
		return err
	}
	effName, err := params.ParseName(cfg.EffectiveUnitWeight)
	if err != nil {
		return err
	}
	if _, err := params.ParseName(cfg.TotalStress); err != nil {
		return err
	}
	if _, err := params.ParseName(cfg.EffectiveStress); err != nil {
		return err
	}
	if _, err := params.ParseName(cfg.HydrostaticPressure); err != nil {
		return err
	}
	// Checked up front so the failure leaves the profile untouched; the
	// integrations below would otherwise fail after mutating.
	for i, l := range sp.layers {
		if l.Numerics[pn].HasNaN() {
			return fmt.Errorf("%w: %q is NaN in layer %d",
				ErrNaNInIntegrand, cfg.TotalUnitWeight, i)
		}
	}

	waterLevel := cfg.WaterLevel
	if waterLevel < sp.MinDepth() {
		waterLevel = sp.MinDepth()
	}
	if waterLevel > sp.MaxDepth() {
		waterLevel = sp.MaxDepth()
	}
	if sp.MinDepth() < waterLevel && waterLevel < sp.MaxDepth() && !sp.hasTransition(waterLevel) {
		if err := sp.InsertLayerTransition(waterLevel); err != nil {
			return err
		}
	}

	for i := range sp.layers {
		total := sp.layers[i].Numerics[pn].Constant()
		if sp.layers[i].Center() < waterLevel {
			sp.setNumeric(i, waterName, params.Constant(0))
			sp.setNumeric(i, effName, params.Constant(total))
		} else {
			sp.setNumeric(i, waterName, params.Constant(cfg.WaterUnitWeight))
			sp.setNumeric(i, effName, params.Constant(total-cfg.WaterUnitWeight))
		}
	}

	if err := sp.DepthIntegration(cfg.WaterUnitWeightCol, cfg.HydrostaticPressure, 0); err != nil {
		return err
	}
	if err := sp.DepthIntegration(cfg.EffectiveUnitWeight, cfg.EffectiveStress, cfg.InitialTotalStress); err != nil {
		return err
	}
	return sp.DepthIntegration(cfg.TotalUnitWeight, cfg.TotalStress, cfg.InitialTotalStress)
}
