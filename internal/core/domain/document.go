package domain

// Document is the normalised text form of a RawDocument.
// Content is what fetch_docs returns.
type Document struct {
	// URI is the location the content was read from.
	URI string

	// Title is the document title when one could be found.
	Title string

	// Content is the full text after normalisation.
	Content string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any
}
