package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OddsPolicy overrides the default odds arbitration configuration: which
// timestamp column drives the arbitration, and which columns prefer the
// most recent versus the earliest non-null value.
type OddsPolicy struct {
	TimestampColumn string   `yaml:"timestamp_column"`
	Recent          []string `yaml:"recent"`
	Oldest          []string `yaml:"oldest"`
}

// PolicyFile is the on-disk shape of a merge-policy override file.
type PolicyFile struct {
	Odds OddsPolicy `yaml:"odds"`
}

// LoadPolicyFile reads and validates a YAML merge-policy override.
func LoadPolicyFile(path string) (*PolicyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	var pf PolicyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse policy file %s: %w", path, err)
	}

	recent := make(map[string]bool, len(pf.Odds.Recent))
	for _, c := range pf.Odds.Recent {
		recent[c] = true
	}
	for _, c := range pf.Odds.Oldest {
		if recent[c] {
			return nil, fmt.Errorf("policy file %s: column %q listed as both recent and oldest", path, c)
		}
	}
	return &pf, nil
}
