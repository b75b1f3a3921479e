package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"invocation-capture/internal/analyze"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// CaptureImport is the import path of the capture package.
	CaptureImport string
	// Filename is the name of the generated file.
	Filename string
	// OutputDir is where the debug sidecar goes when formatting fails.
	OutputDir string
	// GenerateComments enables a doc comment on every adapter.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		CaptureImport:    "invocation-capture/capture",
		Filename:         "standins_gen.go",
		GenerateComments: true,
	}
}

// Generator generates stand-in adapters for analyzed interfaces.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "standins_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// templateData holds all data needed for the stand-in template.
type templateData struct {
	PackageName      string
	Imports          []importSpec
	Capture          string
	GenerateComments bool
	StandIns         []standInData
}

type standInData struct {
	Interface string
	Adapter   string
	Methods   []methodData
}

type methodData struct {
	Name        string
	Params      string // p0 T, p1 ...U
	Results     string // T or (T, U), empty without results
	ResultTypes string // []reflect.Type{...} or nil
	Args        string // , p0, p1
	Returns     string // capture.Result[T](out, 0), ...
}

// Generate renders one file declaring adapters for ifaces, all of which
// must belong to pkg.
func (g *Generator) Generate(pkg *analyze.PackageInfo, ifaces []*analyze.InterfaceInfo) (*GeneratedFile, error) {
	if len(ifaces) == 0 {
		return nil, fmt.Errorf("no interfaces to generate for %s", pkg.Path)
	}

	im := newImports(pkg.Path)
	data := &templateData{
		PackageName:      pkg.Name,
		Capture:          im.add(g.config.CaptureImport, ""),
		GenerateComments: g.config.GenerateComments,
	}
	reflectPkg := im.add("reflect", "reflect")

	for _, iface := range ifaces {
		if iface.ID.PkgPath != pkg.Path {
			return nil, fmt.Errorf("interface %s does not belong to %s", iface.ID, pkg.Path)
		}

		if iface.Skip {
			return nil, fmt.Errorf("interface %s cannot be adapted: %s", iface.ID, iface.Reason)
		}

		data.StandIns = append(data.StandIns, g.buildStandIn(iface, im, data.Capture, reflectPkg))
	}

	data.Imports = im.sorted()

	var buf bytes.Buffer
	if err := standInTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: keep the unformatted code around for debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, g.config.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: g.config.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

func (g *Generator) buildStandIn(iface *analyze.InterfaceInfo, im *imports, capturePkg, reflectPkg string) standInData {
	sd := standInData{
		Interface: iface.ID.Name,
		Adapter:   adapterName(iface.ID.Name),
	}

	for i := range iface.Methods {
		sd.Methods = append(sd.Methods, buildMethod(&iface.Methods[i], im, capturePkg, reflectPkg))
	}

	return sd
}

func buildMethod(m *analyze.MethodInfo, im *imports, capturePkg, reflectPkg string) methodData {
	md := methodData{Name: m.Name, ResultTypes: "nil"}

	params := make([]string, len(m.Params))
	var args strings.Builder
	for i, p := range m.Params {
		name := analyze.ParamName(i)

		typ := im.typeString(p.Type)
		if m.Variadic && i == len(m.Params)-1 {
			typ = "..." + im.typeString(p.Type.(*types.Slice).Elem())
		}

		params[i] = name + " " + typ
		args.WriteString(", " + name)
	}

	md.Params = strings.Join(params, ", ")
	md.Args = args.String()

	if len(m.Results) == 0 {
		return md
	}

	results := make([]string, len(m.Results))
	reflected := make([]string, len(m.Results))
	returns := make([]string, len(m.Results))
	for i, r := range m.Results {
		results[i] = im.typeString(r.Type)
		reflected[i] = reflectPkg + ".TypeFor[" + results[i] + "]()"
		returns[i] = capturePkg + ".Result[" + results[i] + "](out, " + strconv.Itoa(i) + ")"
	}

	md.Results = results[0]
	if len(results) > 1 {
		md.Results = "(" + strings.Join(results, ", ") + ")"
	}

	md.ResultTypes = "[]" + reflectPkg + ".Type{" + strings.Join(reflected, ", ") + "}"
	md.Returns = strings.Join(returns, ", ")

	return md
}

// adapterName turns Person into personStandIn.
func adapterName(iface string) string {
	r, size := utf8.DecodeRuneInString(iface)

	return string(unicode.ToLower(r)) + iface[size:] + "StandIn"
}

// Template for the stand-in file

var standInTemplate = template.Must(template.New("standins").Parse(`// Code generated by standin-generator. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

func init() {
{{range .StandIns}}	{{$.Capture}}.RegisterStandIn(func(p *{{$.Capture}}.Proxy) {{.Interface}} { return &{{.Adapter}}{Proxy: p} })
{{end}}}
{{range .StandIns}}{{$adapter := .Adapter}}
{{if $.GenerateComments}}// {{.Adapter}} records the calls made on {{.Interface}}.
{{end}}type {{.Adapter}} struct {
	*{{$.Capture}}.Proxy
}
{{range .Methods}}
func (s *{{$adapter}}) {{.Name}}({{.Params}}){{if .Results}} {{.Results}}{{end}} {
{{if .Returns}}	out := s.Proxy.Invoke("{{.Name}}", {{.ResultTypes}}{{.Args}})
	return {{.Returns}}
{{else}}	s.Proxy.Invoke("{{.Name}}", {{.ResultTypes}}{{.Args}})
{{end}}}
{{end}}{{end}}`))
