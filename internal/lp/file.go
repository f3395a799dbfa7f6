package lp

import (
	"encoding/json"
	"fmt"
	"os"
)

const fileVersion = 1

// problemFile is the JSON structure of a saved .lpgraph file.
type problemFile struct {
	Version int `json:"version"`
	Problem
}

// SaveFile writes the problem to a JSON file.
func (p *Problem) SaveFile(path string) error {
	pf := problemFile{Version: fileVersion, Problem: p.Clone()}
	data, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadFile reads a problem from a JSON file.
func LoadFile(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf problemFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	prob := pf.Problem
	return &prob, nil
}
