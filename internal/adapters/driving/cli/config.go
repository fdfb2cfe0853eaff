package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/chr33s/mcpdoc/internal/adapters/driven/config/file"
	"github.com/chr33s/mcpdoc/internal/connectors/filesystem"
	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/core/ports/driven"
	"github.com/chr33s/mcpdoc/internal/logger"
)

// appConfig is the validated startup configuration.
type appConfig struct {
	Sources   []domain.DocSource
	Settings  domain.Settings
	Transport domain.Transport
}

// configFile pairs a config path with the loader for its flag.
type configFile struct {
	path   string
	format file.Format
	loader driven.SourceLoader
}

// loadConfig assembles sources and settings from config files and flags.
// File sources come first in yaml, json, toml order, then --urls.
// Settings in files apply unless the matching flag was set explicitly.
func loadConfig(flags *pflag.FlagSet) (*appConfig, error) {
	cfg := &appConfig{
		Settings:  domain.DefaultSettings(),
		Transport: domain.Transport(strings.ToLower(transportName)),
	}

	files := []configFile{
		{path: yamlFile, format: file.FormatYAML, loader: file.NewLoader(file.FormatYAML)},
		{path: jsonFile, format: file.FormatJSON, loader: file.NewLoader(file.FormatJSON)},
		{path: tomlFile, format: file.FormatTOML, loader: file.NewLoader(file.FormatTOML)},
	}

	var fileSettings []driven.FileSettings
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if guessed, ok := file.FormatFromPath(f.path); ok && guessed != f.format {
			logger.Warn("%s looks like %s but is parsed as %s (--%s)", f.path, guessed, f.format, f.format)
		}
		loaded, err := f.loader.Load(f.path)
		if err != nil {
			return nil, err
		}
		cfg.Sources = append(cfg.Sources, loaded.Sources...)
		fileSettings = append(fileSettings, loaded.Settings)
	}

	for _, token := range urlTokens {
		src, err := parseURLToken(token)
		if err != nil {
			return nil, err
		}
		cfg.Sources = append(cfg.Sources, src)
	}

	settings, err := buildSettings(flags, fileSettings)
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseURLToken turns "name:location" or a bare location into a DocSource.
// Tokens starting with http or file:// are never split on the colon.
func parseURLToken(token string) (domain.DocSource, error) {
	token = strings.TrimSpace(token)

	var src domain.DocSource
	if strings.HasPrefix(token, "http") || strings.HasPrefix(token, "file://") {
		src.Location = token
	} else if name, location, ok := strings.Cut(token, ":"); ok {
		src.Name = strings.TrimSpace(name)
		src.Location = strings.TrimSpace(location)
	} else {
		src.Location = token
	}

	if src.Location == "" {
		return src, fmt.Errorf("%w: empty doc source in --urls %q", domain.ErrConfig, token)
	}
	return src, nil
}

// buildSettings merges flag values over file settings.
func buildSettings(flags *pflag.FlagSet, fileSettings []driven.FileSettings) (domain.Settings, error) {
	s := domain.DefaultSettings()

	follow := followRedirects
	seconds := timeoutSeconds
	domains := allowedDomains

	for _, fs := range fileSettings {
		if fs.FollowRedirects != nil && !flags.Changed("follow-redirects") {
			follow = *fs.FollowRedirects
		}
		if fs.Timeout != nil && !flags.Changed("timeout") {
			seconds = *fs.Timeout
		}
		if len(fs.AllowedDomains) > 0 && !flags.Changed("allowed-domains") {
			domains = append(append([]string(nil), domains...), fs.AllowedDomains...)
		}
	}

	if seconds <= 0 {
		return s, fmt.Errorf("%w: timeout must be positive, got %v", domain.ErrConfig, seconds)
	}
	if maxBodyBytes < 0 {
		return s, fmt.Errorf("%w: --max-body-bytes must not be negative", domain.ErrConfig)
	}
	if rateLimit < 0 {
		return s, fmt.Errorf("%w: --rate-limit must not be negative", domain.ErrConfig)
	}

	s.FollowRedirects = follow
	s.Timeout = time.Duration(seconds * float64(time.Second))
	s.AllowedDomains = domains
	s.UserAgent = userAgent
	if s.UserAgent == "" {
		s.UserAgent = "mcpdoc/" + version
	}
	s.MaxBodyBytes = maxBodyBytes
	s.RateLimit = rateLimit
	s.RateBurst = rateBurst
	return s, nil
}

// validateConfig rejects configurations the server must not start with.
func validateConfig(cfg *appConfig) error {
	if !cfg.Transport.IsValid() {
		return fmt.Errorf("%w: unknown transport %q (want stdio, sse or http)", domain.ErrConfig, cfg.Transport)
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("%w: port %d out of range", domain.ErrConfig, port)
	}
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("%w: no doc sources configured; use --urls, --yaml, --json or --toml", domain.ErrConfig)
	}

	for _, src := range cfg.Sources {
		if src.Kind() != domain.SourceLocal {
			continue
		}
		if err := filesystem.CheckReadable(domain.CanonicalPath(src.Location)); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrConfig, err)
		}
	}
	return nil
}
