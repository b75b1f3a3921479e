// Package capture records which calls a piece of code makes on a value it
// is given, without running any real logic.
//
// A Factory hands out placeholders. Interface and func types get a stand-in
// whose every call is appended to an Argument chain and answered with a new
// placeholder of the result type. Other types get a value encoding a unique
// identity, remembered in a bounded registry so that ActualArgument can turn
// it back into its chain:
//
//	arg, err := capture.Path(nil, func(p model.Person) string {
//		return p.Address().City()
//	})
//	// arg.String() == "model.Person.Address().City()"
//
// Stand-ins for interfaces are generated by cmd/standin-generator and
// registered with RegisterStandIn. Sealed types the built-in strategies
// cannot tell apart can be given a Creator with RegisterFinalTypeCreator.
package capture
