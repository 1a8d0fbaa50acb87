package soilprofile

import (
	"fmt"

	"github.com/strataworks/stratum/params"
)

// DepthIntegration integrates a constant-per-layer parameter over depth into
// a new linearly varying parameter, e.g. unit weight into vertical stress.
// Walking the layers top to bottom, the output starts at startValue and each
// layer adds integrand × thickness; continuity across transitions holds by
// construction, each layer's "from" being the previous layer's "to".
//
// The integrand must be constant in every layer (ErrNotConstant) and free of
// NaN (ErrNaNInIntegrand). The output name must follow the
// "<name> [<unit>]" convention and replaces any existing parameter of that
// name.
func (sp *SoilProfile) DepthIntegration(parameter, outputParameter string, startValue float64) error {
	pn, err := sp.numericName(parameter)
	if err != nil {
		return err
	}
	if sp.isLinearName(pn) {
		return fmt.Errorf("%w: %q, integration needs a constant value in each layer",
			ErrNotConstant, parameter)
	}
	outName, err := params.ParseName(outputParameter)
	if err != nil {
		return err
	}
	for i, l := range sp.layers {
		if l.Numerics[pn].HasNaN() {
			return fmt.Errorf("%w: %q is NaN in layer %d", ErrNaNInIntegrand, parameter, i)
		}
	}

	running := startValue
	for i, l := range sp.layers {
		next := running + l.Numerics[pn].Constant()*l.Thickness()
		sp.setNumeric(i, outName, params.Linear(running, next))
		running = next
	}
	return nil
}
