package analyze

import (
	"cmp"
	"fmt"
	"go/types"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedImports

// proxyField is the name of the field adapters embed; a method with the
// same name would not compile.
const proxyField = "Proxy"

// Analyzer loads Go packages and extracts their interfaces.
type Analyzer struct {
	// Dir is the directory patterns are resolved from. Empty means the
	// current directory.
	Dir   string
	graph *TypeGraph
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./fixture", "invocation-capture/fixture").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage extracts the named interfaces of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Types: pkg.Types,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		iface, ok := named.Underlying().(*types.Interface)
		if !ok {
			continue
		}

		info := a.analyzeInterface(pkg.Types, named, iface)
		a.graph.Interfaces[info.ID] = info
		pkgInfo.Interfaces = append(pkgInfo.Interfaces, info.ID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// analyzeInterface flattens the method set of named. Interfaces that cannot
// be implemented by an adapter in pkg are marked Skip.
func (a *Analyzer) analyzeInterface(pkg *types.Package, named *types.Named, iface *types.Interface) *InterfaceInfo {
	obj := named.Obj()
	info := &InterfaceInfo{
		ID:     TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()},
		GoType: named,
	}

	switch {
	case named.TypeParams().Len() > 0:
		info.Skip, info.Reason = true, "generic interface"
		return info
	case !iface.IsMethodSet():
		info.Skip, info.Reason = true, "type constraint"
		return info
	case iface.NumMethods() == 0:
		info.Skip, info.Reason = true, "empty interface"
		return info
	}

	for i := range iface.NumMethods() {
		fn := iface.Method(i)

		if !fn.Exported() && fn.Pkg() != pkg {
			info.Skip, info.Reason = true, fmt.Sprintf("unexported method %s of package %s", fn.Name(), fn.Pkg().Path())
			return info
		}

		if fn.Name() == proxyField {
			info.Skip, info.Reason = true, "method "+proxyField+" collides with the embedded proxy"
			return info
		}

		info.Methods = append(info.Methods, analyzeMethod(fn))
	}

	slices.SortFunc(info.Methods, func(x, y MethodInfo) int {
		return cmp.Compare(x.Name, y.Name)
	})

	return info
}

func analyzeMethod(fn *types.Func) MethodInfo {
	sig := fn.Type().(*types.Signature)

	return MethodInfo{
		Name:     fn.Name(),
		Params:   tupleParams(sig.Params()),
		Results:  tupleParams(sig.Results()),
		Variadic: sig.Variadic(),
		Exported: fn.Exported(),
	}
}

func tupleParams(t *types.Tuple) []ParamInfo {
	params := make([]ParamInfo, t.Len())
	for i := range t.Len() {
		v := t.At(i)
		params[i] = ParamInfo{Name: v.Name(), Type: v.Type()}
	}

	return params
}

// GetInterface returns the InterfaceInfo for a named interface of a loaded
// package, failing when it is missing or cannot be adapted.
func (a *Analyzer) GetInterface(pkgPath, typeName string) (*InterfaceInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}
	info := a.graph.GetInterface(id)
	if info == nil {
		return nil, fmt.Errorf("interface %s not found", id)
	}
	if info.Skip {
		return nil, fmt.Errorf("interface %s cannot be adapted: %s", id, info.Reason)
	}
	return info, nil
}
