package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied to omitted fields.
const (
	DefaultVersion       = "1"
	DefaultCaptureImport = "invocation-capture/capture"
	DefaultOutput        = "standins_gen.go"
)

// LoadFile loads and parses a YAML manifest from the given path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest

	err := yaml.Unmarshal(data, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&m)

	if err := Validate(&m); err != nil {
		return nil, err
	}

	return &m, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(m *Manifest) {
	if m.Version == "" {
		m.Version = DefaultVersion
	}

	if m.CaptureImport == "" {
		m.CaptureImport = DefaultCaptureImport
	}

	for i := range m.Packages {
		p := &m.Packages[i]
		if p.Output == "" {
			p.Output = DefaultOutput
		}
	}
}

// Validate reports every problem of m at once.
func Validate(m *Manifest) error {
	var errs []error

	if m.Version != DefaultVersion {
		errs = append(errs, fmt.Errorf("unsupported manifest version %q", m.Version))
	}

	if len(m.Packages) == 0 {
		errs = append(errs, errors.New("manifest lists no packages"))
	}

	seen := make(map[string]bool)
	for i, p := range m.Packages {
		if p.Path == "" {
			errs = append(errs, fmt.Errorf("packages[%d]: path is required", i))
			continue
		}

		if seen[p.Path] {
			errs = append(errs, fmt.Errorf("packages[%d]: duplicate path %s", i, p.Path))
		}
		seen[p.Path] = true
	}

	return errors.Join(errs...)
}

// Marshal serializes a Manifest to YAML.
func Marshal(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}

// WriteFile writes a Manifest to the given path.
func WriteFile(m *Manifest, path string) error {
	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}
