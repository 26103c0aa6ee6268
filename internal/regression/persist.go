package regression

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Record is the persisted form of a fitted model.
type Record struct {
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	FeatureNames []string  `json:"featureNames"`
}

// Coefficients returns a copy of the model's persisted state.
func (m *Model) Coefficients() Record {
	rec := Record{Bias: m.bias}
	rec.Weights = append(rec.Weights, m.weights...)
	rec.FeatureNames = append(rec.FeatureNames, m.featureNames...)
	return rec
}

// FromRecord builds a model directly from a persisted record, replacing all
// state wholesale. The record's weight dimension is not validated here;
// callers that know their feature count should check it explicitly.
func FromRecord(rec Record) *Model {
	return &Model{
		weights:      rec.Weights,
		bias:         rec.Bias,
		featureNames: rec.FeatureNames,
	}
}

// SaveFile writes the model record as JSON via a temp file and rename, so a
// concurrent reader never observes a torn record.
func (m *Model) SaveFile(path string) error {
	data, err := json.MarshalIndent(m.Coefficients(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".model-*.json")
	if err != nil {
		return fmt.Errorf("create temp model file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close model file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename model file: %w", err)
	}
	return nil
}

// LoadFile reads a persisted model record from disk.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse model file: %w", err)
	}
	return FromRecord(rec), nil
}
