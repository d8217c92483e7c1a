package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cuemby/snapvault/internal/config"
	"github.com/cuemby/snapvault/pkg/key"
	"github.com/cuemby/snapvault/pkg/logging"
	"github.com/cuemby/snapvault/pkg/metrics"
	"github.com/cuemby/snapvault/pkg/repository"
	"github.com/cuemby/snapvault/pkg/s3store"
	"github.com/cuemby/snapvault/pkg/store"
)

// openRepository builds a Repository from the command's global flags:
// load and validate the TOML config, resolve the passphrase from
// --password or SNAPVAULT_PASSWORD, construct the S3 driver, and
// optionally instrument it, wrap it in a local disk cache, and start a
// metrics server.
func openRepository(cmd *cobra.Command) (*repository.Repository, error) {
	configPath, _ := cmd.Flags().GetString("config-file")
	if configPath == "" {
		return nil, errors.New("--config-file is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	passphrase, _ := cmd.Flags().GetString("password")
	if passphrase == "" {
		passphrase = os.Getenv("SNAPVAULT_PASSWORD")
	}
	if passphrase == "" {
		return nil, errors.New("a passphrase is required: pass --password or set SNAPVAULT_PASSWORD")
	}

	var s store.Store
	s, err = s3store.New(*cfg)
	if err != nil {
		return nil, fmt.Errorf("opening S3 store: %w", err)
	}

	var collectors *metrics.Collectors
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		collectors = metrics.NewCollectors(prometheus.DefaultRegisterer)
		s = store.Instrument(s, s3store.Driver, collectors)
		go serveMetrics(addr)
	}

	if cacheDir, _ := cmd.Flags().GetString("cache-dir"); cacheDir != "" {
		var onHit, onMiss func()
		if collectors != nil {
			onHit, onMiss = collectors.RecordCacheHit, collectors.RecordCacheMiss
		}
		s = store.NewCache(cacheDir, s, onHit, onMiss)
	}

	repo := repository.New(key.New(""), s, passphrase)
	if collectors != nil {
		repo.SetPacksetLoadHook(collectors.RecordPackObjectLoaded)
	}
	return repo, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	logger := logging.WithComponent("metrics-server")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics server stopped")
	}
}
