package services

import (
	"sort"
	"strings"

	"github.com/chr33s/mcpdoc/internal/core/domain"
)

// AccessPolicy is the fetch gate's allow-set: the domain registry for
// remote targets and the local allow-list for files.
// It is immutable after construction and safe for concurrent use.
type AccessPolicy struct {
	wildcard bool
	origins  []string
	local    map[string]struct{}
}

// NewAccessPolicy derives the allow-sets from the configured sources.
//
// Every remote source contributes its origin. extraDomains are added
// verbatim and must already be in scheme://host/ form to ever match.
// If extraDomains contains domain.WildcardDomain the origin set is dropped
// and every remote URL is allowed. Local sources contribute their canonical
// path; the wildcard never applies to them.
func NewAccessPolicy(sources []domain.DocSource, extraDomains []string) *AccessPolicy {
	p := &AccessPolicy{local: make(map[string]struct{})}

	seen := make(map[string]struct{})
	add := func(origin string) {
		if _, ok := seen[origin]; ok {
			return
		}
		seen[origin] = struct{}{}
		p.origins = append(p.origins, origin)
	}

	for _, src := range sources {
		if src.Kind() == domain.SourceRemote {
			add(domain.OriginOf(src.Location))
			continue
		}
		p.local[domain.CanonicalPath(src.Location)] = struct{}{}
	}

	for _, d := range extraDomains {
		if d == domain.WildcardDomain {
			p.wildcard = true
			p.origins = nil
			break
		}
		add(d)
	}

	return p
}

// IsWildcard reports whether every remote origin is allowed.
func (p *AccessPolicy) IsWildcard() bool {
	return p.wildcard
}

// AllowsRemote reports whether rawURL starts with a registered origin.
func (p *AccessPolicy) AllowsRemote(rawURL string) bool {
	if p.wildcard {
		return true
	}
	for _, origin := range p.origins {
		if strings.HasPrefix(rawURL, origin) {
			return true
		}
	}
	return false
}

// AllowsLocal reports whether the canonical form of path is exactly one of
// the configured local sources.
func (p *AccessPolicy) AllowsLocal(path string) bool {
	_, ok := p.local[domain.CanonicalPath(path)]
	return ok
}

// AllowedOrigins returns the registry entries in first-seen order,
// or ["*"] in wildcard mode.
func (p *AccessPolicy) AllowedOrigins() []string {
	if p.wildcard {
		return []string{domain.WildcardDomain}
	}
	out := make([]string, len(p.origins))
	copy(out, p.origins)
	return out
}

// AllowedPaths returns the local allow-list sorted.
func (p *AccessPolicy) AllowedPaths() []string {
	out := make([]string, 0, len(p.local))
	for path := range p.local {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// CheckRemote returns an access-denied FetchError if rawURL is not allowed.
func (p *AccessPolicy) CheckRemote(rawURL string) error {
	if p.AllowsRemote(rawURL) {
		return nil
	}
	return &domain.FetchError{
		Kind:    domain.KindAccessDenied,
		Source:  domain.SourceRemote,
		Target:  rawURL,
		Allowed: p.AllowedOrigins(),
	}
}

// CheckLocal returns an access-denied FetchError if path is not allowed.
func (p *AccessPolicy) CheckLocal(path string) error {
	if p.AllowsLocal(path) {
		return nil
	}
	return &domain.FetchError{
		Kind:    domain.KindAccessDenied,
		Source:  domain.SourceLocal,
		Target:  domain.CanonicalPath(path),
		Allowed: p.AllowedPaths(),
	}
}
