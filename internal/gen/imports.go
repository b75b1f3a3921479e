package gen

import (
	"cmp"
	"go/types"
	"slices"
	"strconv"

	"invocation-capture/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// imports collects the packages referenced by generated code and picks a
// unique local name for each of them.
type imports struct {
	self   string            // package being generated into
	byPath map[string]string // import path -> local name
	names  map[string]string // local name -> import path
	specs  []importSpec
}

func newImports(self string) *imports {
	return &imports{
		self:   self,
		byPath: make(map[string]string),
		names:  make(map[string]string),
	}
}

// add registers path, whose package is called name, and returns the local
// name to use for it.
func (im *imports) add(path, name string) string {
	if path == im.self {
		return ""
	}

	if local, ok := im.byPath[path]; ok {
		return local
	}

	if name == "" {
		name = common.PkgAlias(path)
	}

	local, alias := name, ""
	for i := 2; im.names[local] != ""; i++ {
		local = name + strconv.Itoa(i)
		alias = local
	}

	im.byPath[path] = local
	im.names[local] = path
	im.specs = append(im.specs, importSpec{Alias: alias, Path: path})

	return local
}

// qualifier is a types.Qualifier recording every package it is asked about.
func (im *imports) qualifier(p *types.Package) string {
	return im.add(p.Path(), p.Name())
}

// typeString formats t as seen from the generated package.
func (im *imports) typeString(t types.Type) string {
	return types.TypeString(t, im.qualifier)
}

// sorted returns the collected imports ordered by path.
func (im *imports) sorted() []importSpec {
	specs := slices.Clone(im.specs)
	slices.SortFunc(specs, func(a, b importSpec) int {
		return cmp.Compare(a.Path, b.Path)
	})

	return specs
}
