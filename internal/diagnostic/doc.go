// Package diagnostic provides structured warnings and errors for the
// stand-in generator.
//
// Key capabilities:
//   - Interfaces skipped because no adapter can implement them
//   - Requested interfaces that do not exist, with close-name suggestions
package diagnostic
