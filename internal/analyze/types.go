package analyze

import (
	"go/types"
	"strconv"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "invocation-capture/fixture"
	Name    string // e.g., "Person"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// ParamInfo describes one parameter or result of a method.
type ParamInfo struct {
	Name string     // Declared name, "" when unnamed
	Type types.Type // For a variadic parameter, the slice type
}

// MethodInfo describes a method of an interface method set.
type MethodInfo struct {
	Name     string
	Params   []ParamInfo
	Results  []ParamInfo
	Variadic bool // Last parameter is ...T
	Exported bool
}

// ParamName returns the identifier used for the i-th parameter in generated
// code. Declared names are ignored so they never clash with generated ones.
func ParamName(i int) string {
	return "p" + strconv.Itoa(i)
}

// InterfaceInfo describes a named interface type.
type InterfaceInfo struct {
	ID      TypeID
	Methods []MethodInfo // Sorted by name, embedded interfaces flattened
	GoType  *types.Named
	// Skip is set when no adapter can be written for the interface; Reason
	// says why.
	Skip   bool
	Reason string
}

// TypeGraph holds all analyzed interfaces from loaded packages.
type TypeGraph struct {
	// Interfaces maps TypeID to InterfaceInfo for all named interfaces.
	Interfaces map[TypeID]*InterfaceInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Interfaces: make(map[TypeID]*InterfaceInfo),
		Packages:   make(map[string]*PackageInfo),
	}
}

// GetInterface returns the InterfaceInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetInterface(id TypeID) *InterfaceInfo {
	return g.Interfaces[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path       string   // Import path
	Name       string   // Package name
	Dir        string   // Directory holding the package sources
	Types      *types.Package
	Interfaces []TypeID // Named interfaces defined in this package, sorted
}
