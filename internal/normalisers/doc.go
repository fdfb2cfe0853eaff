// Package normalisers provides implementations of the Normaliser interface
// for the document formats doc sources serve. Each normaliser knows how to
// turn a specific MIME type into text.
//
// Normalisers are registered with the Registry at startup. The Registry
// picks the highest-priority normaliser for a document's MIME type,
// sniffing the content when the type is missing or unknown.
package normalisers
