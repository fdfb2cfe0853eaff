// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// AccessPolicy is the fetch gate's allow-set, CatalogService answers
// list_doc_sources and FetchService answers fetch_docs. All three are
// immutable after construction and safe for concurrent use.
package services
