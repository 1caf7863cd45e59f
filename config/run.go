package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pevans/gdeltpull/gdelt"
)

// RunConfigName is the conventional filename for a saved run configuration
// inside the output directory.
const RunConfigName = "input.json"

// LoadRun loads a saved run configuration from the given path. Returns nil
// if the file doesn't exist (not an error). Returns an error if the file
// exists but cannot be parsed.
func LoadRun(path string) (*gdelt.Params, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil // File doesn't exist -- not an error
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run configuration: %w", err)
	}

	var params gdelt.Params
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse run configuration: %w", err)
	}

	return &params, nil
}

// SaveRun writes the run configuration to the given path, overwriting any
// existing file, so a later run can reload it verbatim and skip the prompts.
func SaveRun(path string, params *gdelt.Params) error {
	data, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write run configuration: %w", err)
	}

	return nil
}
