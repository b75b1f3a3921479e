// Package gen provides deterministic Go code generation for stand-in adapters.
//
// Generation approach uses text/template + go/format for readable Go code.
//
// For every interface the generated file declares:
//   - An adapter struct embedding *capture.Proxy
//   - One forwarding method per interface method, handing the call to Proxy.Invoke
//   - An init registration through capture.RegisterStandIn
package gen
