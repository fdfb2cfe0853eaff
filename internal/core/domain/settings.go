package domain

import "time"

const unknownDescription = "Unknown"

// DefaultTimeout bounds each network request when none is configured.
const DefaultTimeout = 10 * time.Second

// WildcardDomain in the allowed-domains list permits every remote origin.
const WildcardDomain = "*"

// Transport defines how the MCP server talks to its host.
type Transport string

// Available transports.
const (
	// TransportStdio speaks JSON-RPC over stdin/stdout.
	TransportStdio Transport = "stdio"

	// TransportSSE serves the legacy server-sent-events binding.
	TransportSSE Transport = "sse"

	// TransportHTTP serves the streamable HTTP binding.
	TransportHTTP Transport = "http"
)

// IsValid returns true if the transport is recognised.
func (t Transport) IsValid() bool {
	switch t {
	case TransportStdio, TransportSSE, TransportHTTP:
		return true
	default:
		return false
	}
}

// IsNetwork returns true if the transport listens on a TCP address.
func (t Transport) IsNetwork() bool {
	return t == TransportSSE || t == TransportHTTP
}

// String returns the string representation.
func (t Transport) String() string {
	return string(t)
}

// Description returns a human-readable description of the transport.
func (t Transport) Description() string {
	switch t {
	case TransportStdio:
		return "stdio (JSON-RPC over stdin/stdout)"
	case TransportSSE:
		return "SSE (server-sent events over HTTP)"
	case TransportHTTP:
		return "Streamable HTTP"
	default:
		return unknownDescription
	}
}

// Settings holds fetch behaviour shared by every retrieval.
// Settings are fixed at startup; changing them requires a restart.
type Settings struct {
	// FollowRedirects enables HTTP redirect following and one meta-refresh hop.
	FollowRedirects bool

	// Timeout bounds each network request.
	Timeout time.Duration

	// AllowedDomains are extra origins (scheme://host/) added to the
	// domain registry. WildcardDomain allows every origin.
	AllowedDomains []string

	// UserAgent is sent with every request. Empty means Go's default.
	UserAgent string

	// MaxBodyBytes caps response bodies. Zero means unlimited.
	MaxBodyBytes int64

	// RateLimit is the per-origin request rate in requests per second.
	// Zero disables rate limiting.
	RateLimit float64

	// RateBurst is the per-origin burst size when RateLimit is set.
	RateBurst int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Timeout:   DefaultTimeout,
		RateBurst: 1,
	}
}
