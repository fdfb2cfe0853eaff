// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Retriever: Reads a remote URL or a local file into a RawDocument
//   - Normaliser: Transforms raw documents into text
//   - NormaliserRegistry: Selects the appropriate normaliser
//   - SourceLoader: Reads doc sources and settings from a config file
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FetchObserver: Records fetch outcomes (metrics). Nil disables reporting.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
