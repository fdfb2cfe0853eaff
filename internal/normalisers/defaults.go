package normalisers

import (
	"github.com/chr33s/mcpdoc/internal/normalisers/html"
	"github.com/chr33s/mcpdoc/internal/normalisers/markdown"
	"github.com/chr33s/mcpdoc/internal/normalisers/plaintext"
)

// RegisterDefaults registers all built-in normalisers with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(html.New())
	r.Register(markdown.New())
	r.Register(plaintext.New())
}

// Defaults returns a registry with the built-in normalisers.
func Defaults() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
