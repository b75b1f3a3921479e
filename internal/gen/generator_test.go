package gen

import (
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invocation-capture/internal/analyze"
)

func TestGenerator_Generate_SimpleInterface(t *testing.T) {
	pkg := &analyze.PackageInfo{Path: "example/store", Name: "store"}

	// Order has one getter and one method without results
	iface := &analyze.InterfaceInfo{
		ID: analyze.TypeID{PkgPath: "example/store", Name: "Order"},
		Methods: []analyze.MethodInfo{
			{
				Name:    "ID",
				Results: []analyze.ParamInfo{{Type: types.Typ[types.Int64]}},
			},
			{
				Name:   "Touch",
				Params: []analyze.ParamInfo{{Name: "n", Type: types.Typ[types.Int]}},
			},
		},
	}

	gen := NewGenerator(DefaultGeneratorConfig())
	file, err := gen.Generate(pkg, []*analyze.InterfaceInfo{iface})
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Equal(t, "standins_gen.go", file.Filename)

	content := string(file.Content)
	assert.Contains(t, content, "// Code generated by standin-generator. DO NOT EDIT.")
	assert.Contains(t, content, "package store")
	assert.Contains(t, content, `"invocation-capture/capture"`)
	assert.Contains(t, content, "capture.RegisterStandIn(func(p *capture.Proxy) Order { return &orderStandIn{Proxy: p} })")
	assert.Contains(t, content, "// orderStandIn records the calls made on Order.")
	assert.Contains(t, content, "func (s *orderStandIn) ID() int64 {")
	assert.Contains(t, content, `out := s.Proxy.Invoke("ID", []reflect.Type{reflect.TypeFor[int64]()})`)
	assert.Contains(t, content, "return capture.Result[int64](out, 0)")
	assert.Contains(t, content, "func (s *orderStandIn) Touch(p0 int) {")
	assert.Contains(t, content, `s.Proxy.Invoke("Touch", nil, p0)`)
}

func TestGenerator_Generate_NoComments(t *testing.T) {
	pkg := &analyze.PackageInfo{Path: "example/store", Name: "store"}
	iface := &analyze.InterfaceInfo{
		ID: analyze.TypeID{PkgPath: "example/store", Name: "Order"},
		Methods: []analyze.MethodInfo{
			{Name: "Cancel"},
		},
	}

	cfg := DefaultGeneratorConfig()
	cfg.GenerateComments = false

	file, err := NewGenerator(cfg).Generate(pkg, []*analyze.InterfaceInfo{iface})
	require.NoError(t, err)

	assert.NotContains(t, string(file.Content), "records the calls")
}

func TestGenerator_Generate_ForeignTypes(t *testing.T) {
	pkg := &analyze.PackageInfo{Path: "example/store", Name: "store"}

	warehouse := types.NewPackage("example/warehouse", "warehouse")
	item := types.NewNamed(types.NewTypeName(0, warehouse, "Item", nil), types.NewStruct(nil, nil), nil)

	// seen first, legacy keeps the plain name and the other package is aliased
	legacy := types.NewPackage("example/legacy/warehouse", "warehouse")
	slot := types.NewNamed(types.NewTypeName(0, legacy, "Slot", nil), types.Typ[types.String], nil)

	iface := &analyze.InterfaceInfo{
		ID: analyze.TypeID{PkgPath: "example/store", Name: "Picker"},
		Methods: []analyze.MethodInfo{
			{
				Name: "Pick",
				Params: []analyze.ParamInfo{
					{Type: slot},
					{Type: types.NewSlice(types.Typ[types.String])},
				},
				Results: []analyze.ParamInfo{
					{Type: types.NewPointer(item)},
					{Type: types.Universe.Lookup("error").Type()},
				},
				Variadic: true,
			},
		},
	}

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pkg, []*analyze.InterfaceInfo{iface})
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, `"example/legacy/warehouse"`)
	assert.Contains(t, content, `warehouse2 "example/warehouse"`)
	assert.Contains(t, content, "func (s *pickerStandIn) Pick(p0 warehouse.Slot, p1 ...string) (*warehouse2.Item, error) {")
	assert.Contains(t, content, "[]reflect.Type{reflect.TypeFor[*warehouse2.Item](), reflect.TypeFor[error]()}, p0, p1)")
	assert.Contains(t, content, "return capture.Result[*warehouse2.Item](out, 0), capture.Result[error](out, 1)")
}

func TestGenerator_Generate_Errors(t *testing.T) {
	pkg := &analyze.PackageInfo{Path: "example/store", Name: "store"}
	gen := NewGenerator(DefaultGeneratorConfig())

	_, err := gen.Generate(pkg, nil)
	require.Error(t, err)

	_, err = gen.Generate(pkg, []*analyze.InterfaceInfo{{
		ID: analyze.TypeID{PkgPath: "example/other", Name: "Order"},
	}})
	require.ErrorContains(t, err, "does not belong")

	_, err = gen.Generate(pkg, []*analyze.InterfaceInfo{{
		ID:     analyze.TypeID{PkgPath: "example/store", Name: "Any"},
		Skip:   true,
		Reason: "empty interface",
	}})
	require.ErrorContains(t, err, "empty interface")
}

func TestAdapterName(t *testing.T) {
	assert.Equal(t, "personStandIn", adapterName("Person"))
	assert.Equal(t, "uRLStandIn", adapterName("URL"))
	assert.Equal(t, "éclairStandIn", adapterName("Éclair"))
}

func TestImports_Add(t *testing.T) {
	im := newImports("example/store")

	assert.Equal(t, "", im.add("example/store", "store"))
	assert.Equal(t, "capture", im.add("invocation-capture/capture", ""))
	assert.Equal(t, "capture", im.add("invocation-capture/capture", ""))
	assert.Equal(t, "capture2", im.add("example/capture", "capture"))

	assert.Equal(t, []importSpec{
		{Alias: "capture2", Path: "example/capture"},
		{Path: "invocation-capture/capture"},
	}, im.sorted())
}

// TestGenerator_Fixture regenerates the fixture stand-ins and compares them
// with the checked-in file.
func TestGenerator_Fixture(t *testing.T) {
	analyzer := analyze.NewAnalyzer()
	graph, err := analyzer.LoadPackages("invocation-capture/fixture")
	require.NoError(t, err)

	pkg := graph.Packages["invocation-capture/fixture"]
	require.NotNil(t, pkg)

	var ifaces []*analyze.InterfaceInfo
	for _, id := range pkg.Interfaces {
		ifaces = append(ifaces, graph.GetInterface(id))
	}

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pkg, ifaces)
	require.NoError(t, err)

	want, err := os.ReadFile(filepath.Join(pkg.Dir, "standins_gen.go"))
	require.NoError(t, err)

	if diff := cmp.Diff(strings.Split(string(want), "\n"), strings.Split(string(file.Content), "\n")); diff != "" {
		t.Errorf("fixture stand-ins are stale (-checked-in +generated):\n%s", diff)
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	err := WriteFiles([]GeneratedFile{{Filename: "a.go", Content: []byte("package a\n")}}, dir)
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(b))
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "standins_gen.go", []byte("package x {")))

	b, err := os.ReadFile(filepath.Join(dir, "standins_gen.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "package x {", string(b))

	assert.NoError(t, writeDebugUnformatted("", "x.go", nil))
}
