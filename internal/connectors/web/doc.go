// Package web provides the remote Retriever. It issues a bounded GET per
// fetch, applies the configured redirect policy and follows at most one
// HTML meta-refresh hop after re-validating its target.
package web
