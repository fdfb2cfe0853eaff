package cli

import (
	"github.com/chr33s/mcpdoc/internal/connectors/filesystem"
	"github.com/chr33s/mcpdoc/internal/connectors/web"
	"github.com/chr33s/mcpdoc/internal/core/services"
	"github.com/chr33s/mcpdoc/internal/logger"
	"github.com/chr33s/mcpdoc/internal/metrics"
	"github.com/chr33s/mcpdoc/internal/normalisers"
)

// app holds the services built from one configuration.
type app struct {
	cfg     *appConfig
	policy  *services.AccessPolicy
	catalog *services.CatalogService
	fetch   *services.FetchService
	metrics *metrics.Metrics
}

// newApp wires retrievers, normalisers and services for cfg.
func newApp(cfg *appConfig) *app {
	policy := services.NewAccessPolicy(cfg.Sources, cfg.Settings.AllowedDomains)

	remote := web.New(cfg.Settings, policy.CheckRemote)
	local := filesystem.New()
	registry := normalisers.Defaults()

	fetch := services.NewFetchService(policy, remote, local, registry)
	m := metrics.New()
	fetch.SetObserver(m)

	a := &app{
		cfg:     cfg,
		policy:  policy,
		catalog: services.NewCatalogService(cfg.Sources),
		fetch:   fetch,
		metrics: m,
	}
	a.logSummary()
	return a
}

func (a *app) logSummary() {
	logger.Section("Configuration")
	for _, src := range a.cfg.Sources {
		logger.Debug("source %q (%s): %s", src.DisplayName(), src.Kind(), src.Location)
	}
	logger.Debug("follow redirects: %t, timeout: %s", a.cfg.Settings.FollowRedirects, a.cfg.Settings.Timeout)

	if a.policy.IsWildcard() {
		logger.Warn("allowed domains contains '*': fetches from any remote origin are permitted")
	} else {
		logger.Debug("allowed origins: %v", a.policy.AllowedOrigins())
	}
	if paths := a.policy.AllowedPaths(); len(paths) > 0 {
		logger.Debug("allowed files: %v", paths)
	}
}
