package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/core/ports/driven"
	"github.com/chr33s/mcpdoc/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driven.Retriever = (*Retriever)(nil)

const acceptHeader = "text/markdown,text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8"

// maxRedirects bounds automatic HTTP redirect chains, matching net/http.
const maxRedirects = 10

// Retriever fetches remote documents over HTTP.
// It is safe for concurrent use; each call owns its own deadline.
type Retriever struct {
	settings  domain.Settings
	validator driven.RedirectValidator
	limiter   *OriginLimiter

	// client applies the configured redirect policy.
	client *http.Client
	// follow always follows redirects; it serves the meta-refresh hop.
	follow *http.Client
}

// New creates a remote retriever. validator re-checks meta-refresh targets
// against the domain registry; nil allows every target.
func New(settings domain.Settings, validator driven.RedirectValidator) *Retriever {
	if settings.Timeout <= 0 {
		settings.Timeout = domain.DefaultTimeout
	}

	follow := &http.Client{
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	client := follow
	if !settings.FollowRedirects {
		client = &http.Client{
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}

	return &Retriever{
		settings:  settings,
		validator: validator,
		limiter:   NewOriginLimiter(settings.RateLimit, settings.RateBurst),
		client:    client,
		follow:    follow,
	}
}

// Retrieve fetches target. When redirects are followed, a meta-refresh tag
// in the body triggers one further request to its allowed target.
func (r *Retriever) Retrieve(ctx context.Context, target string) (*domain.RawDocument, error) {
	doc, err := r.get(ctx, r.client, target)
	if err != nil {
		return nil, err
	}
	if !r.settings.FollowRedirects {
		return doc, nil
	}

	refresh := FindMetaRefresh(doc.Content)
	if refresh == "" {
		return doc, nil
	}

	next, err := resolveReference(doc.URI, refresh)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.KindHTTP, Target: refresh, Err: err}
	}
	if r.validator != nil {
		if err := r.validator(next); err != nil {
			return nil, err
		}
	}

	logger.Debug("following meta refresh %s -> %s", doc.URI, next)

	hop, err := r.get(ctx, r.follow, next)
	if err != nil {
		return nil, err
	}
	hop.Metadata["meta_refresh_from"] = doc.URI
	return hop, nil
}

// get issues one GET bounded by the configured timeout.
func (r *Retriever) get(ctx context.Context, client *http.Client, target string) (*domain.RawDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, r.settings.Timeout)
	defer cancel()

	// The limiter fails fast when the next token lies beyond the deadline.
	if err := r.limiter.Wait(ctx, target); err != nil {
		return nil, &domain.FetchError{
			Kind:    domain.KindTimeout,
			Target:  target,
			Timeout: r.settings.Timeout,
			Err:     err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.KindHTTP, Target: target, Err: err}
	}
	req.Header.Set("Accept", acceptHeader)
	if r.settings.UserAgent != "" {
		req.Header.Set("User-Agent", r.settings.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, r.transportError(ctx, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &domain.FetchError{
			Kind:       domain.KindHTTP,
			Target:     target,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}

	body, err := r.readBody(resp.Body)
	if err != nil {
		return nil, r.transportError(ctx, target, err)
	}

	final := target
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}

	return &domain.RawDocument{
		URI:      final,
		MIMEType: mediaType(resp.Header.Get("Content-Type")),
		Content:  body,
		Metadata: map[string]any{
			"status":     resp.StatusCode,
			"redirected": final != target,
		},
	}, nil
}

// errBodyTooLarge is returned when a body exceeds MaxBodyBytes.
var errBodyTooLarge = errors.New("response body too large")

func (r *Retriever) readBody(body io.Reader) ([]byte, error) {
	limit := r.settings.MaxBodyBytes
	if limit <= 0 {
		return io.ReadAll(body)
	}

	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: exceeds %d bytes", errBodyTooLarge, limit)
	}
	return data, nil
}

// transportError classifies a failure that produced no usable response.
func (r *Retriever) transportError(ctx context.Context, target string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &domain.FetchError{
			Kind:    domain.KindTimeout,
			Target:  target,
			Timeout: r.settings.Timeout,
			Err:     err,
		}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &domain.FetchError{
			Kind:    domain.KindTimeout,
			Target:  target,
			Timeout: r.settings.Timeout,
			Err:     err,
		}
	}
	return &domain.FetchError{Kind: domain.KindHTTP, Target: target, Err: err}
}

// resolveReference resolves ref against base and requires an http(s) result.
func resolveReference(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse meta refresh url: %w", err)
	}

	next := baseURL.ResolveReference(refURL)
	if next.Scheme != "http" && next.Scheme != "https" {
		return "", fmt.Errorf("meta refresh to unsupported url %q", next.String())
	}
	return next.String(), nil
}

// mediaType strips parameters from a Content-Type header.
func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}
