package manifest

// Manifest is the root of a stand-in manifest file.
type Manifest struct {
	Version       string    `yaml:"version"`
	CaptureImport string    `yaml:"capture_import,omitempty"`
	Comments      *bool     `yaml:"comments,omitempty"`
	Packages      []Package `yaml:"packages"`
}

// Package selects the interfaces of one Go package.
type Package struct {
	// Path is a package pattern as accepted by go/packages.
	Path string `yaml:"path"`
	// Output is the generated file name, relative to the package directory.
	Output     string   `yaml:"output,omitempty"`
	Interfaces []string `yaml:"interfaces,omitempty"`
}

// GenerateComments reports whether adapters get doc comments.
func (m *Manifest) GenerateComments() bool {
	return m.Comments == nil || *m.Comments
}
