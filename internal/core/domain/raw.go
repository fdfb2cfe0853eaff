package domain

// RawDocument represents opaque bytes fetched by a retriever.
// It is the retriever's output before normalisation.
type RawDocument struct {
	// URI is the final location: the URL after redirects, or the canonical path.
	URI string

	// MIMEType is the media type without parameters (e.g., "text/html").
	// Empty when the retriever could not tell.
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains retriever-specific key-value pairs
	// (status code, redirect hops, file size).
	Metadata map[string]any
}
