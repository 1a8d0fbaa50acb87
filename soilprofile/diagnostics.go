package soilprofile

import (
	"fmt"
	"log"
)

// Warning is a non-fatal advisory produced by an editing operation.
type Warning struct {
	Op      string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Op, w.Message)
}

// Diagnostics collects advisory conditions for a profile. Fatal conditions
// are returned as errors; warnings accumulate here and are optionally
// mirrored to a logger.
type Diagnostics struct {
	logger   *log.Logger
	warnings []Warning
}

func (d *Diagnostics) warnf(op, format string, args ...any) {
	w := Warning{Op: op, Message: fmt.Sprintf(format, args...)}
	d.warnings = append(d.warnings, w)
	if d.logger != nil {
		d.logger.Printf("soilprofile: %s", w)
	}
}

// Warnings returns the accumulated warnings without clearing them.
func (d *Diagnostics) Warnings() []Warning {
	out := make([]Warning, len(d.warnings))
	copy(out, d.warnings)
	return out
}

// Take returns the accumulated warnings and clears the collector.
func (d *Diagnostics) Take() []Warning {
	out := d.warnings
	d.warnings = nil
	return out
}

// SetLogger mirrors subsequent warnings to l. A nil logger disables
// mirroring.
func (d *Diagnostics) SetLogger(l *log.Logger) {
	d.logger = l
}
