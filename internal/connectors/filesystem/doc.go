// Package filesystem provides the local Retriever. It reads files that the
// fetch gate has admitted by canonical path and guesses their MIME type
// from the extension.
package filesystem
