package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/menagerie/config"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir             string
	tickFile        *os.File
	generationsFile *os.File

	// Track if headers have been written
	tickHeaderWritten bool
	genHeaderWritten  bool
}

// NewOutputManager creates a new output manager and initializes the
// output directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "ticks.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating ticks.csv: %w", err)
	}
	om.tickFile = f

	f, err = os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		om.tickFile.Close()
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}
	om.generationsFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTick writes one tick record to ticks.csv.
func (om *OutputManager) WriteTick(rec TickRecord) error {
	if om == nil {
		return nil
	}

	records := []TickRecord{rec}
	if !om.tickHeaderWritten {
		if err := gocsv.Marshal(records, om.tickFile); err != nil {
			return fmt.Errorf("writing tick: %w", err)
		}
		om.tickHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.tickFile); err != nil {
			return fmt.Errorf("writing tick: %w", err)
		}
	}
	return nil
}

// WriteGeneration writes one generation stats record to generations.csv.
func (om *OutputManager) WriteGeneration(gs GenStats) error {
	if om == nil {
		return nil
	}

	records := []GenStats{gs}
	if !om.genHeaderWritten {
		if err := gocsv.Marshal(records, om.generationsFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
		om.genHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.generationsFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	if om.tickFile != nil {
		if err := om.tickFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if om.generationsFile != nil {
		if err := om.generationsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
