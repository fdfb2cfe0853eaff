// Package connectors provides the Retriever implementations used by the
// fetch gate: web for http and https URLs and filesystem for local files.
package connectors
