// Package manifest loads the YAML file listing which interfaces of which
// packages get generated stand-ins.
//
// Example:
//
//	version: "1"
//	capture_import: invocation-capture/capture
//	packages:
//	  - path: invocation-capture/fixture
//	    output: standins_gen.go
//	    interfaces: [Address, Person]
//
// An empty interfaces list selects every interface the package declares.
package manifest
