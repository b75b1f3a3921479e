// Package analyze provides package loading and interface extraction.
//
// It uses golang.org/x/tools/go/packages with go/types
// to build an in-memory model of the interfaces a package declares.
//
// Key types:
//   - TypeID: package import path + type name
//   - InterfaceInfo: the flattened method set of a named interface
//   - MethodInfo: method name, parameters, results and variadic flag
package analyze
