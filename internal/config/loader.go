package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML job file from the given path.
func LoadFile(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Job.
func Parse(data []byte) (*Job, error) {
	var job Job

	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job YAML: %w", err)
	}

	applyDefaults(&job)

	return &job, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(job *Job) {
	if job.Version == "" {
		job.Version = "1"
	}

	if job.Score.Function == "" {
		job.Score.Function = "equality"
	}

	if job.Cardinality == "" {
		job.Cardinality = "N:1"
	}

	if job.OnUnmapped == "" {
		job.OnUnmapped = "ignore"
	}
}

// Marshal serializes a Job to YAML.
func Marshal(job *Job) ([]byte, error) {
	return yaml.Marshal(job)
}
