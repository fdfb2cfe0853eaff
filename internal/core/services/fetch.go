package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/core/ports/driven"
	"github.com/chr33s/mcpdoc/internal/core/ports/driving"
	"github.com/chr33s/mcpdoc/internal/logger"
)

// Ensure FetchService implements the interface.
var _ driving.FetchService = (*FetchService)(nil)

// outcomeOK is the observer outcome for a successful fetch.
const outcomeOK = "ok"

// FetchService is the fetch gate: it classifies a target, checks it against
// the access policy, retrieves it and normalises the result.
type FetchService struct {
	policy   *AccessPolicy
	remote   driven.Retriever
	local    driven.Retriever
	registry driven.NormaliserRegistry
	observer driven.FetchObserver
}

// NewFetchService creates a new fetch service. All arguments are required.
func NewFetchService(
	policy *AccessPolicy,
	remote driven.Retriever,
	local driven.Retriever,
	registry driven.NormaliserRegistry,
) *FetchService {
	return &FetchService{
		policy:   policy,
		remote:   remote,
		local:    local,
		registry: registry,
	}
}

// SetObserver sets the optional fetch observer used for metrics.
func (s *FetchService) SetObserver(observer driven.FetchObserver) {
	s.observer = observer
}

// Fetch returns the normalised text behind target.
func (s *FetchService) Fetch(ctx context.Context, target string) (string, error) {
	start := time.Now()
	reqID := uuid.NewString()
	target = strings.TrimSpace(target)
	kind := domain.Classify(target)

	logger.Debug("[%s] fetch %s target=%q", reqID, kind, target)

	text, err := s.fetch(ctx, kind, target)
	elapsed := time.Since(start)

	outcome := outcomeOK
	if fe, ok := domain.AsFetchError(err); ok {
		outcome = fe.Kind.String()
	} else if err != nil {
		outcome = "error"
	}
	if s.observer != nil {
		s.observer.ObserveFetch(kind, outcome, elapsed)
	}

	if err != nil {
		logger.Debug("[%s] fetch failed after %s: %v", reqID, elapsed, err)
		return "", err
	}
	logger.Debug("[%s] fetched %d bytes of text in %s", reqID, len(text), elapsed)
	return text, nil
}

func (s *FetchService) fetch(ctx context.Context, kind domain.SourceKind, target string) (string, error) {
	if target == "" {
		return "", &domain.FetchError{Kind: domain.KindInvalidInput}
	}

	var (
		raw *domain.RawDocument
		err error
	)
	switch kind {
	case domain.SourceLocal:
		path := domain.CanonicalPath(target)
		if err := s.policy.CheckLocal(path); err != nil {
			return "", err
		}
		raw, err = s.local.Retrieve(ctx, path)
	case domain.SourceRemote:
		if err := s.policy.CheckRemote(target); err != nil {
			return "", err
		}
		raw, err = s.remote.Retrieve(ctx, target)
	}
	if err != nil {
		return "", err
	}

	result, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("normalising %s: %w", raw.URI, err)
	}
	return result.Document.Content, nil
}
