// Package domain defines the core business entities for mcpdoc.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocSource: A configured documentation source (llms.txt index or file)
//   - Settings: Fetch behaviour shared by every retrieval
//   - RawDocument: Opaque bytes returned by a retriever
//   - Document: Normalised text produced from a RawDocument
//   - FetchError: The per-call error taxonomy of the fetch gate
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
