// Package api defines the provider-agnostic types of the strom streaming adapter.
//
// This package provides the data types that cross the adapter boundary:
// conversation turns and their content parts, static model descriptors, the
// normalized event vocabulary emitted while a completion streams, and the
// structured error taxonomy shared by all strom packages.
//
// The package has zero external dependencies (Go standard library only) and
// performs no I/O. Raw provider wire types never appear here: [Event] is the
// sole output contract a consumer sees, regardless of which provider produced
// the stream.
//
// Core types:
//   - [Turn]: One conversation turn (role plus ordered content parts)
//   - [ModelDescriptor]: Static description of a model (limits, capabilities, pricing)
//   - [Event]: Normalized streaming event, either a text fragment or a usage snapshot
//   - [Error]: Structured error with kind, message, and wrapped cause
package api
